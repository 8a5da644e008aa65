package models

import (
	"time"

	"github.com/google/uuid"
)

type InstitutionType string

const (
	InstitutionTypePublic  InstitutionType = "public"
	InstitutionTypePrivate InstitutionType = "private"
)

// ApplicationStatus is the stage of an institution's accreditation application.
type ApplicationStatus string

const (
	ApplicationDraft       ApplicationStatus = "draft"
	ApplicationSubmitted   ApplicationStatus = "submitted"
	ApplicationUnderReview ApplicationStatus = "under_review"
	ApplicationApproved    ApplicationStatus = "approved"
	ApplicationRejected    ApplicationStatus = "rejected"
)

// Institution is one maritime training institution applying for accreditation.
type Institution struct {
	ID             uuid.UUID         `db:"id"`
	Name           string            `db:"name"`
	RegistrationNo string            `db:"registration_no"`
	Type           InstitutionType   `db:"institution_type"`
	Email          string            `db:"email"`
	Phone          string            `db:"phone"`
	Address        string            `db:"address"`
	ContactPerson  string            `db:"contact_person"`
	Status         ApplicationStatus `db:"status"`
	CreatedAt      time.Time         `db:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at"`
}
