package transfer

type PublerMediaResponse struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error string `json:"error,omitempty"`
}

type PublerPostPayload struct {
	Text        string   `json:"text"`
	Accounts    []string `json:"accounts"`
	ScheduledAt string   `json:"scheduled_at"`
	Media       []string `json:"media,omitempty"`
}

type PublerScheduleRequest struct {
	Posts []PublerPostPayload `json:"posts"`
}

type PublerScheduleResponse struct {
	Success bool     `json:"success"`
	JobID   string   `json:"job_id,omitempty"`
	PostIDs []string `json:"post_ids,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

type PublerPostStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
