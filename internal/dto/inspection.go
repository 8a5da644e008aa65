package dto

type ScheduleInspectionRequest struct {
	InstitutionID string `json:"institution_id" validate:"required,uuid"`
	ScheduledFor  string `json:"scheduled_for" validate:"required"`
	Inspector     string `json:"inspector" validate:"required"`
}

type RecordInspectionRequest struct {
	Findings string `json:"findings"`
	Outcome  string `json:"outcome" validate:"required,oneof=passed failed"`
}

type InspectionResponse struct {
	ID            string `json:"id"`
	InstitutionID string `json:"institution_id"`
	ScheduledFor  string `json:"scheduled_for"`
	Inspector     string `json:"inspector"`
	Status        string `json:"status"`
	Findings      string `json:"findings,omitempty"`
	Outcome       string `json:"outcome"`
	CreatedAt     string `json:"created_at"`
}
