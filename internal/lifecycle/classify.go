package lifecycle

import (
	"math"
	"time"

	"github.com/rickd091/mti-portal/internal/models"
)

// DaysUntilExpiry returns the number of whole 24h periods from now until
// expiry, rounded up. Negative means the expiry instant has already passed.
func DaysUntilExpiry(expiry, now time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}

// Classify maps a document's expiry date and the current time to its derived
// status. A nil expiry means the document never expires and is always valid.
// The boundary is inclusive: a document expiring exactly warnDays from now is
// already expiring soon.
//
// Classification is only as fresh as its last evaluation; a document that
// crosses a boundary between evaluations stays misclassified until the next
// pass. That staleness is bounded by the re-classification interval and is a
// documented property, not a bug.
func Classify(expiry *time.Time, now time.Time, warnDays int) models.DocumentStatus {
	if expiry == nil {
		return models.StatusValid
	}
	days := DaysUntilExpiry(*expiry, now)
	switch {
	case days < 0:
		return models.StatusExpired
	case days <= warnDays:
		return models.StatusExpiringSoon
	default:
		return models.StatusValid
	}
}
