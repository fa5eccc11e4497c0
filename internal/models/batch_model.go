package models

import "time"

type AutopilotBatch struct {
	ID              int64     `db:"id" json:"id"`
	ConsultantID    int64     `db:"consultant_id" json:"consultant_id"`
	Status          string    `db:"status" json:"status"`
	TotalPosts      int       `db:"total_posts" json:"total_posts"`
	GeneratedPosts  int       `db:"generated_posts" json:"generated_posts"`
	ImagesGenerated int       `db:"images_generated" json:"images_generated"`
	ApprovedPosts   int       `db:"approved_posts" json:"approved_posts"`
	PublishedPosts  int       `db:"published_posts" json:"published_posts"`
	FailedPosts     int       `db:"failed_posts" json:"failed_posts"`
	LastError       string    `db:"last_error" json:"last_error"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

const (
	BatchStatusGenerating          = "generating"
	BatchStatusAwaitingReview      = "awaiting_review"
	BatchStatusApproved            = "approved"
	BatchStatusPublishing          = "publishing"
	BatchStatusCompleted           = "completed"
	BatchStatusCompletedWithErrors = "completed_with_errors"
	BatchStatusFailed              = "failed"
)
