package models

import "time"

// SocialAccount is a consultant's Publer-connected account for one platform.
type SocialAccount struct {
	ID              int64     `db:"id" json:"id"`
	ConsultantID    int64     `db:"consultant_id" json:"consultant_id"`
	Platform        string    `db:"platform" json:"platform"`
	PublerAccountID string    `db:"publer_account_id" json:"publer_account_id"`
	AccountName     string    `db:"account_name" json:"account_name"`
	AccountUsername string    `db:"account_username" json:"account_username"`
	AccountStatus   string    `db:"account_status" json:"account_status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
