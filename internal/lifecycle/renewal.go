package lifecycle

import (
	"fmt"

	"github.com/rickd091/mti-portal/internal/models"
)

// RequestRenewal flags a document for re-issuance. The whole multi-field
// update is atomic: on an unknown key the store is left completely unmutated,
// with no partial write and no history entry.
//
// Repeat requests are idempotent in effect. The first request sets the flag
// and appends one "renewal_requested" history entry; a second request on an
// already-flagged document only refreshes the request timestamp. The returned
// repeat flag lets callers suppress a duplicate notification.
//
// A renewal request never changes the document's expiry classification; only
// a re-upload with a new expiry date does that.
func (s *Store) RequestRenewal(key, user string) (repeat bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[key]
	if !ok {
		return false, fmt.Errorf("request renewal %q: %w", key, ErrNotFound)
	}

	now := s.clock.Now()
	repeat = doc.RenewalRequested
	doc.RenewalRequested = true
	doc.RenewalRequestDate = &now
	if !repeat {
		doc.History = append(doc.History, models.HistoryEntry{
			State:     models.HistoryStateRenewalRequested,
			Timestamp: now,
			User:      user,
		})
	}
	return repeat, nil
}
