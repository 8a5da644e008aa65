package dto

type NotificationResponse struct {
	ID              string `json:"id"`
	DocumentName    string `json:"document_name"`
	Category        string `json:"category"`
	Status          string `json:"status"`
	DaysUntilExpiry int    `json:"days_until_expiry"`
	RequiresAction  bool   `json:"requires_action"`
}

type SummaryResponse struct {
	Total          int            `json:"total"`
	RequiresAction int            `json:"requires_action"`
	ByStatus       map[string]int `json:"by_status"`
}

type EventResponse struct {
	ID         string `json:"id"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	GroupKey   string `json:"group_key,omitempty"`
	Persistent bool   `json:"persistent"`
	Retryable  bool   `json:"retryable"`
	CreatedAt  string `json:"created_at"`
}
