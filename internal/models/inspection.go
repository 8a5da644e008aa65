package models

import (
	"time"

	"github.com/google/uuid"
)

type InspectionStatus string

const (
	InspectionScheduled InspectionStatus = "scheduled"
	InspectionCompleted InspectionStatus = "completed"
	InspectionCancelled InspectionStatus = "cancelled"
)

type InspectionOutcome string

const (
	OutcomePending InspectionOutcome = "pending"
	OutcomePassed  InspectionOutcome = "passed"
	OutcomeFailed  InspectionOutcome = "failed"
)

// Inspection is a scheduled on-site visit for an accreditation application.
type Inspection struct {
	ID            uuid.UUID         `db:"id"`
	InstitutionID uuid.UUID         `db:"institution_id"`
	ScheduledFor  time.Time         `db:"scheduled_for"`
	Inspector     string            `db:"inspector"`
	Status        InspectionStatus  `db:"status"`
	Findings      string            `db:"findings"`
	Outcome       InspectionOutcome `db:"outcome"`
	CreatedAt     time.Time         `db:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at"`
}
