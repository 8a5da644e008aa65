package models

import (
	"time"

	"github.com/google/uuid"
)

type CertificateStatus string

const (
	CertificateActive  CertificateStatus = "active"
	CertificateRevoked CertificateStatus = "revoked"
	CertificateExpired CertificateStatus = "expired"
)

// Certificate is an issued accreditation certificate.
type Certificate struct {
	ID            uuid.UUID         `db:"id"`
	InstitutionID uuid.UUID         `db:"institution_id"`
	CertificateNo string            `db:"certificate_no"`
	IssuedAt      time.Time         `db:"issued_at"`
	ExpiresAt     time.Time         `db:"expires_at"`
	Status        CertificateStatus `db:"status"`
	CreatedAt     time.Time         `db:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at"`
}
