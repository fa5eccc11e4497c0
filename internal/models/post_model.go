package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

type Post struct {
	ID                int64           `db:"id" json:"id"`
	ConsultantID      int64           `db:"consultant_id" json:"consultant_id"`
	BatchID           sql.NullInt64   `db:"autopilot_batch_id" json:"autopilot_batch_id"`
	Platform          string          `db:"platform" json:"platform"`
	Title             string          `db:"title" json:"title"`
	Hook              string          `db:"hook" json:"hook"`
	FullCopy          string          `db:"full_copy" json:"full_copy"`
	MediaType         string          `db:"media_type" json:"media_type"`
	CopyType          string          `db:"copy_type" json:"copy_type"`
	StructuredContent json.RawMessage `db:"structured_content" json:"structured_content"`
	ContentTheme      string          `db:"content_theme" json:"content_theme"`
	ScheduledAt       time.Time       `db:"scheduled_at" json:"scheduled_at"`
	Status            string          `db:"status" json:"status"`
	ReviewStatus      sql.NullString  `db:"review_status" json:"review_status"`
	CharLimitRetries  int             `db:"char_limit_retries" json:"char_limit_retries"`
	ImageGenStatus    string          `db:"image_generation_status" json:"image_generation_status"`
	ImageURL          string          `db:"image_url" json:"image_url"`
	ImageError        string          `db:"image_error" json:"image_error"`
	PublerPostID      string          `db:"publer_post_id" json:"publer_post_id"`
	PublerStatus      string          `db:"publer_status" json:"publer_status"`
	PublerError       string          `db:"publer_error" json:"publer_error"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

type MediaAsset struct {
	ID           int64     `db:"id" json:"id"`
	ConsultantID int64     `db:"consultant_id" json:"consultant_id"`
	FileName     string    `db:"file_name" json:"file_name"`
	FileType     string    `db:"file_type" json:"file_type"`
	FileSize     int64     `db:"file_size" json:"file_size"`
	FileURL      string    `db:"file_url" json:"file_url"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type PostMedia struct {
	PostID       int64     `db:"post_id" json:"post_id"`
	AssetID      int64     `db:"asset_id" json:"asset_id"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
	PostStatusCancelled = "cancelled"
)

const (
	ImageGenSkipped    = "skipped"
	ImageGenPending    = "pending"
	ImageGenGenerating = "generating"
	ImageGenCompleted  = "completed"
	ImageGenFailed     = "failed"
)

const (
	PublerStatusScheduled = "scheduled"
	PublerStatusFailed    = "failed"
)

const ReviewStatusPending = "pending"
