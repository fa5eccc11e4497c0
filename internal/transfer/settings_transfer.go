package transfer

type ScheduleUpdate struct {
	Platform     string `json:"platform"`
	PostingTimes string `json:"posting_times"`
	ImageStyle   string `json:"image_style"`
}

type PublerKeyUpdate struct {
	ApiKey string `json:"api_key"`
}

type AccountConnect struct {
	Platform        string `json:"platform"`
	PublerAccountID string `json:"publer_account_id"`
	AccountName     string `json:"account_name"`
	AccountUsername string `json:"account_username"`
}

type RemoveRequest struct {
	ID int64 `json:"id"`
}
