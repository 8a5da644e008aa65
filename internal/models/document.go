package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentCategory groups documents for display only; no classification logic
// keys off it.
type DocumentCategory string

const (
	CategoryInstitutional DocumentCategory = "institutional"
	CategoryAcademic      DocumentCategory = "academic"
	CategoryCompliance    DocumentCategory = "compliance"
	CategoryFinancial     DocumentCategory = "financial"
	CategoryFacility      DocumentCategory = "facility"
)

// CategoryLabels maps categories to their display labels.
var CategoryLabels = map[DocumentCategory]string{
	CategoryInstitutional: "Institutional",
	CategoryAcademic:      "Academic",
	CategoryCompliance:    "Compliance",
	CategoryFinancial:     "Financial",
	CategoryFacility:      "Facility",
}

// WorkflowState is the document's approval-pipeline stage, independent of
// expiry classification.
type WorkflowState string

const (
	WorkflowDraft         WorkflowState = "draft"
	WorkflowSubmitted     WorkflowState = "submitted"
	WorkflowUnderReview   WorkflowState = "under_review"
	WorkflowNeedsRevision WorkflowState = "needs_revision"
	WorkflowApproved      WorkflowState = "approved"
	WorkflowRejected      WorkflowState = "rejected"
	WorkflowExpired       WorkflowState = "expired"
	WorkflowDeleted       WorkflowState = "deleted"
)

// WorkflowStateLabels maps workflow states to their display labels.
var WorkflowStateLabels = map[WorkflowState]string{
	WorkflowDraft:         "Draft",
	WorkflowSubmitted:     "Submitted",
	WorkflowUnderReview:   "Under Review",
	WorkflowNeedsRevision: "Needs Revision",
	WorkflowApproved:      "Approved",
	WorkflowRejected:      "Rejected",
	WorkflowExpired:       "Expired",
	WorkflowDeleted:       "Deleted",
}

// Valid reports whether s is one of the closed workflow state set.
func (s WorkflowState) Valid() bool {
	_, ok := WorkflowStateLabels[s]
	return ok
}

// DocumentStatus is the derived expiry-based classification. It is recomputed
// from (expiry date, now, warning threshold) and never written directly.
type DocumentStatus string

const (
	StatusValid        DocumentStatus = "valid"
	StatusExpiringSoon DocumentStatus = "expiring_soon"
	StatusExpired      DocumentStatus = "expired"
)

// HistoryEntry is one append-only audit event on a document. Every workflow
// transition and renewal action appends exactly one entry.
type HistoryEntry struct {
	State     string    `json:"state"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
}

// HistoryStateRenewalRequested labels the history entry appended by a
// renewal request.
const HistoryStateRenewalRequested = "renewal_requested"

// DocumentRecord is one uploaded accreditation document. Key is the stable
// logical identifier for a catalog document type (e.g. "registration_certificate")
// or a generated key for an ad hoc upload.
type DocumentRecord struct {
	ID                 uuid.UUID        `db:"id"`
	InstitutionID      uuid.UUID        `db:"institution_id"`
	Key                string           `db:"doc_key"`
	Name               string           `db:"name"`
	Category           DocumentCategory `db:"category"`
	MimeType           string           `db:"mime_type"`
	SizeBytes          int64            `db:"size_bytes"`
	FileURL            string           `db:"file_url"`
	UploadDate         time.Time        `db:"upload_date"`
	ExpiryDate         *time.Time       `db:"expiry_date"`
	WorkflowState      WorkflowState    `db:"workflow_state"`
	Status             DocumentStatus   `db:"-"` // derived cache, never persisted as ground truth
	RenewalRequested   bool             `db:"renewal_requested"`
	RenewalRequestDate *time.Time       `db:"renewal_request_date"`
	History            []HistoryEntry   `db:"history"`
	CreatedAt          time.Time        `db:"created_at"`
	UpdatedAt          time.Time        `db:"updated_at"`
}
