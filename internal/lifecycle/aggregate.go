package lifecycle

import (
	"time"

	"github.com/rickd091/mti-portal/internal/models"
)

// Summary is the per-application roll-up of classified documents. "Requires
// action" means any classification other than valid.
type Summary struct {
	Total          int
	RequiresAction int
	ByStatus       map[models.DocumentStatus]int
}

// Summarize is a pure reduction over the document set, recomputed on every
// call and never cached.
func Summarize(docs []models.DocumentRecord, now time.Time, warnDays int) Summary {
	summary := Summary{
		ByStatus: map[models.DocumentStatus]int{
			models.StatusValid:        0,
			models.StatusExpiringSoon: 0,
			models.StatusExpired:      0,
		},
	}
	for _, doc := range docs {
		status := Classify(doc.ExpiryDate, now, warnDays)
		summary.Total++
		summary.ByStatus[status]++
		if status != models.StatusValid {
			summary.RequiresAction++
		}
	}
	return summary
}
