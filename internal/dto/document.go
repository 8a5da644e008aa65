package dto

type HistoryEntryResponse struct {
	State     string `json:"state"`
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
}

type DocumentResponse struct {
	ID                 string                 `json:"id"`
	Key                string                 `json:"key"`
	Name               string                 `json:"name"`
	Category           string                 `json:"category"`
	MimeType           string                 `json:"mime_type"`
	SizeBytes          int64                  `json:"size_bytes"`
	FileURL            string                 `json:"file_url"`
	UploadDate         string                 `json:"upload_date"`
	ExpiryDate         string                 `json:"expiry_date,omitempty"`
	WorkflowState      string                 `json:"workflow_state"`
	Status             string                 `json:"status"`
	DaysUntilExpiry    *int                   `json:"days_until_expiry,omitempty"`
	RenewalRequested   bool                   `json:"renewal_requested"`
	RenewalRequestDate string                 `json:"renewal_request_date,omitempty"`
	History            []HistoryEntryResponse `json:"history,omitempty"`
}

type UploadFileResult struct {
	ProgressID string `json:"progress_id,omitempty"`
	FileName   string `json:"file_name"`
	Accepted   bool   `json:"accepted"`
}

type UploadBatchResponse struct {
	Accepted int                `json:"accepted"`
	Rejected int                `json:"rejected"`
	Reasons  []string           `json:"reasons,omitempty"`
	Files    []UploadFileResult `json:"files"`
}

type UploadProgressResponse struct {
	ID        string `json:"id"`
	FileName  string `json:"file_name"`
	Phase     string `json:"phase"`
	Error     string `json:"error,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

type TransitionRequest struct {
	State string `json:"state" validate:"required"`
}
