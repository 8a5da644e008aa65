package lifecycle

import (
	"sync"
	"time"

	"github.com/rickd091/mti-portal/internal/models"

	"github.com/google/uuid"
)

// Notification is one derived, displayable entry for a document's actionable
// condition. The set is rebuilt in full on every pass; the stable ID (the
// source document's logical key) lets a renderer keep per-item identity
// across rebuilds. At most one notification exists per document.
type Notification struct {
	ID              string
	DocumentName    string
	Category        models.DocumentCategory
	Status          models.DocumentStatus
	DaysUntilExpiry int
	RequiresAction  bool
}

// ComputeNotifications derives the notification list from the document set.
// By default only documents classified as non-valid produce an entry; with
// showAll every document produces one. Output order follows input order;
// entries are not sorted by urgency.
//
// Malformed documents (missing key or name) are skipped whole; no partial
// entry is ever emitted. This function never panics.
func ComputeNotifications(docs []models.DocumentRecord, now time.Time, warnDays int, showAll bool) []Notification {
	out := make([]Notification, 0, len(docs))
	for _, doc := range docs {
		if doc.Key == "" || doc.Name == "" {
			continue
		}
		status := Classify(doc.ExpiryDate, now, warnDays)
		if status == models.StatusValid && !showAll {
			continue
		}
		days := 0
		if doc.ExpiryDate != nil {
			days = DaysUntilExpiry(*doc.ExpiryDate, now)
		}
		out = append(out, Notification{
			ID:              doc.Key,
			DocumentName:    doc.Name,
			Category:        doc.Category,
			Status:          status,
			DaysUntilExpiry: days,
			RequiresAction:  status != models.StatusValid,
		})
	}
	return out
}

// EventSeverity tags a transient feed event.
type EventSeverity string

const (
	SeverityError   EventSeverity = "error"
	SeveritySuccess EventSeverity = "success"
	SeverityInfo    EventSeverity = "info"
)

// Event is one discrete occurrence pushed into the feed: a rejected
// validation, a failed upload or renewal, or an optional success confirmation.
type Event struct {
	ID         uuid.UUID
	Severity   EventSeverity
	Message    string
	GroupKey   string
	Persistent bool
	Retryable  bool
	CreatedAt  time.Time

	expiresAt time.Time
}

// FeedConfig configures the transient event feed.
type FeedConfig struct {
	AutoHideDuration time.Duration
	MaxRetained      int
	Clock            Clock
}

// Feed retains a bounded window of transient events. Non-persistent events
// auto-expire after the configured duration; when the window is full the
// oldest event is dropped first regardless of severity.
type Feed struct {
	mu          sync.Mutex
	clock       Clock
	autoHide    time.Duration
	maxRetained int
	events      []Event
}

func NewFeed(cfg FeedConfig) *Feed {
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock()
	}
	autoHide := cfg.AutoHideDuration
	if autoHide <= 0 {
		autoHide = 5 * time.Second
	}
	maxRetained := cfg.MaxRetained
	if maxRetained <= 0 {
		maxRetained = 3
	}
	return &Feed{
		clock:       clock,
		autoHide:    autoHide,
		maxRetained: maxRetained,
		events:      make([]Event, 0, maxRetained),
	}
}

// Push stamps and retains an event, evicting the oldest when over capacity.
func (f *Feed) Push(e Event) Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.clock.Now()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = now
	if !e.Persistent {
		e.expiresAt = now.Add(f.autoHide)
	}

	f.events = append(f.events, e)
	if len(f.events) > f.maxRetained {
		f.events = f.events[len(f.events)-f.maxRetained:]
	}
	return e
}

// Active returns the retained events that have not auto-expired, oldest
// first. Expired events are pruned.
func (f *Feed) Active() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.clock.Now()
	kept := f.events[:0]
	for _, e := range f.events {
		if e.Persistent || e.expiresAt.After(now) {
			kept = append(kept, e)
		}
	}
	f.events = kept

	out := make([]Event, len(f.events))
	copy(out, f.events)
	return out
}

// Grouped buckets the active events by their group key instead of flattening
// them into one list. Events without a group key land under the empty key.
func (f *Feed) Grouped() map[string][]Event {
	out := make(map[string][]Event)
	for _, e := range f.Active() {
		out[e.GroupKey] = append(out[e.GroupKey], e)
	}
	return out
}
