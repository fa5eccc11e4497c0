package models

import "time"

// PublishHistory records one Publer scheduling attempt for a post.
type PublishHistory struct {
	ID           int64     `db:"id" json:"id"`
	ConsultantID int64     `db:"consultant_id" json:"consultant_id"`
	PostID       int64     `db:"post_id" json:"post_id"`
	AccountID    int64     `db:"account_id" json:"account_id"`
	ErrorMessage string    `db:"error_message" json:"error_message"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
