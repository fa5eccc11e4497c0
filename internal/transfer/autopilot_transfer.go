package transfer

import "encoding/json"

// PlatformPlan configures one platform for an autopilot run. AccountID is
// the social account row holding the Publer account reference.
type PlatformPlan struct {
	Enabled     bool  `json:"enabled"`
	PostsPerDay int   `json:"posts_per_day"`
	AccountID   int64 `json:"account_id"`
}

type GenerationParams struct {
	PostSchema          string `json:"post_schema"`
	PostCategory        string `json:"post_category"`
	WritingStyle        string `json:"writing_style"`
	MediaType           string `json:"media_type"`
	CopyType            string `json:"copy_type"`
	AwarenessLevel      string `json:"awareness_level"`
	SophisticationLevel string `json:"sophistication_level"`
	CustomInstructions  string `json:"custom_instructions"`
}

// AutopilotRun is the request body for one autopilot batch run.
type AutopilotRun struct {
	StartDate          string                  `json:"start_date"`
	EndDate            string                  `json:"end_date"`
	Platforms          map[string]PlatformPlan `json:"platforms"`
	ExcludeWeekends    bool                    `json:"exclude_weekends"`
	ExcludeHolidays    bool                    `json:"exclude_holidays"`
	ExcludedDates      []string                `json:"excluded_dates"`
	ContentTypes       []string                `json:"content_types"`
	OptimalTimes       map[string][]string     `json:"optimal_times"`
	Generation         GenerationParams        `json:"generation"`
	AutoGenerateImages bool                    `json:"auto_generate_images"`
	AutoPublish        bool                    `json:"auto_publish"`
	ReviewMode         bool                    `json:"review_mode"`
}

const (
	ProgressRunning   = "running"
	ProgressCompleted = "completed"
	ProgressError     = "error"
)

type GenerationProgress struct {
	Total           int    `json:"total"`
	Completed       int    `json:"completed"`
	CurrentDate     string `json:"current_date"`
	CurrentPlatform string `json:"current_platform"`
	Status          string `json:"status"`
	Error           string `json:"error,omitempty"`
}

type AutopilotResult struct {
	Success   bool     `json:"success"`
	Generated int      `json:"generated"`
	Errors    []string `json:"errors"`
}

type ContentIdea struct {
	Title             string          `json:"title"`
	Hook              string          `json:"hook"`
	FullCopy          string          `json:"full_copy"`
	StructuredContent json.RawMessage `json:"structured_content"`
	QualityScore      float64         `json:"quality_score"`
}

type ContentResult struct {
	Ideas     []ContentIdea `json:"ideas"`
	ModelUsed string        `json:"model_used"`
}

// ContentRequest is what the content generator receives for one slot.
type ContentRequest struct {
	Platform string           `json:"platform"`
	Theme    string           `json:"theme"`
	Params   GenerationParams `json:"params"`
}
