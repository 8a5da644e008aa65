package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment records one accreditation fee transaction against the external
// gateway. The gateway's own redirect/polling protocol is not modelled here.
type Payment struct {
	ID            uuid.UUID     `db:"id"`
	InstitutionID uuid.UUID     `db:"institution_id"`
	Reference     string        `db:"reference"`
	AmountCents   int64         `db:"amount_cents"`
	Currency      string        `db:"currency"`
	Status        PaymentStatus `db:"status"`
	CheckoutURL   string        `db:"checkout_url"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
}
