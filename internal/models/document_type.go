package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentType is one entry in the catalog of document kinds an institution
// can submit. Required types gate certificate issuance.
type DocumentType struct {
	ID        uuid.UUID        `db:"id"`
	Key       string           `db:"key"`
	Label     string           `db:"label"`
	Category  DocumentCategory `db:"category"`
	Required  bool             `db:"required"`
	CreatedAt time.Time        `db:"created_at"`
}
