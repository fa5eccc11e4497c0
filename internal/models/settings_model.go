package models

import "time"

// PostingSchedule holds a consultant's default posting times for one
// platform, as a comma-separated list of HH:MM values in slot order.
type PostingSchedule struct {
	ID           int64     `db:"id" json:"id"`
	ConsultantID int64     `db:"consultant_id" json:"consultant_id"`
	Platform     string    `db:"platform" json:"platform"`
	PostingTimes string    `db:"posting_times" json:"posting_times"`
	ImageStyle   string    `db:"image_style" json:"image_style"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
