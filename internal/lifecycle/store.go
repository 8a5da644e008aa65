package lifecycle

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rickd091/mti-portal/internal/models"
)

var (
	// ErrNotFound is returned when an operation targets a document key that
	// is not in the store. The store is left unmutated.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateKey is returned by Insert when the logical key is taken.
	ErrDuplicateKey = errors.New("document key already exists")
	// ErrInvalidState is returned for workflow states outside the closed set.
	ErrInvalidState = errors.New("invalid workflow state")
	// ErrInvalidTransition is returned in strict mode when the requested
	// transition is not in the transition table.
	ErrInvalidTransition = errors.New("workflow transition not allowed")
)

// strictTransitionTable is consulted only when strict mode is enabled. The
// default is permissive: administrators may move a document anywhere,
// including approved back to draft.
var strictTransitionTable = map[models.WorkflowState][]models.WorkflowState{
	models.WorkflowDraft:         {models.WorkflowSubmitted, models.WorkflowDeleted},
	models.WorkflowSubmitted:     {models.WorkflowUnderReview, models.WorkflowDeleted},
	models.WorkflowUnderReview:   {models.WorkflowNeedsRevision, models.WorkflowApproved, models.WorkflowRejected},
	models.WorkflowNeedsRevision: {models.WorkflowSubmitted, models.WorkflowDeleted},
	models.WorkflowApproved:      {models.WorkflowExpired, models.WorkflowDeleted},
	models.WorkflowRejected:      {models.WorkflowSubmitted, models.WorkflowDeleted},
	models.WorkflowExpired:       {models.WorkflowSubmitted, models.WorkflowDeleted},
	models.WorkflowDeleted:       {},
}

// StoreConfig configures one in-memory document store.
type StoreConfig struct {
	WarningThresholdDays int
	StrictTransitions    bool
	Clock                Clock
}

// Store is the in-memory document collection owned by one open application
// session. Documents are keyed by their logical key and iterated in insertion
// order. The derived Status field on every returned record is recomputed from
// the clock at read time; it is a cache, never ground truth.
type Store struct {
	mu       sync.Mutex
	clock    Clock
	warnDays int
	strict   bool
	order    []string
	docs     map[string]*models.DocumentRecord
}

func NewStore(cfg StoreConfig) *Store {
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock()
	}
	return &Store{
		clock:    clock,
		warnDays: cfg.WarningThresholdDays,
		strict:   cfg.StrictTransitions,
		docs:     make(map[string]*models.DocumentRecord),
	}
}

// Insert adds a document under its logical key and appends the initial
// history entry. An empty workflow state defaults to draft.
func (s *Store) Insert(doc models.DocumentRecord, user string) error {
	if doc.Key == "" {
		return fmt.Errorf("insert: missing document key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[doc.Key]; ok {
		return fmt.Errorf("insert %q: %w", doc.Key, ErrDuplicateKey)
	}

	now := s.clock.Now()
	if doc.WorkflowState == "" {
		doc.WorkflowState = models.WorkflowDraft
	}
	if !doc.WorkflowState.Valid() {
		return fmt.Errorf("insert %q: %q: %w", doc.Key, doc.WorkflowState, ErrInvalidState)
	}
	if doc.UploadDate.IsZero() {
		doc.UploadDate = now
	}
	doc.History = append(doc.History, models.HistoryEntry{
		State:     string(doc.WorkflowState),
		Timestamp: now,
		User:      user,
	})
	doc.Status = Classify(doc.ExpiryDate, now, s.warnDays)

	s.docs[doc.Key] = &doc
	s.order = append(s.order, doc.Key)
	return nil
}

// Restore puts a previously persisted document back into the store without
// stamping a new history entry. Used when rebuilding a session from the
// persistence collaborator.
func (s *Store) Restore(doc models.DocumentRecord) error {
	if doc.Key == "" {
		return fmt.Errorf("restore: missing document key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[doc.Key]; ok {
		return fmt.Errorf("restore %q: %w", doc.Key, ErrDuplicateKey)
	}
	doc.Status = Classify(doc.ExpiryDate, s.clock.Now(), s.warnDays)
	s.docs[doc.Key] = &doc
	s.order = append(s.order, doc.Key)
	return nil
}

// Get returns a copy of the document with a freshly classified status.
func (s *Store) Get(key string) (models.DocumentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[key]
	if !ok {
		return models.DocumentRecord{}, fmt.Errorf("get %q: %w", key, ErrNotFound)
	}
	doc.Status = Classify(doc.ExpiryDate, s.clock.Now(), s.warnDays)
	return copyDoc(doc), nil
}

// List returns copies of all documents in insertion order, classified against
// the current clock.
func (s *Store) List() []models.DocumentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	out := make([]models.DocumentRecord, 0, len(s.order))
	for _, key := range s.order {
		doc := s.docs[key]
		doc.Status = Classify(doc.ExpiryDate, now, s.warnDays)
		out = append(out, copyDoc(doc))
	}
	return out
}

// Len returns the number of documents in the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// Transition moves a document to a new workflow state and appends a history
// entry. Transitions are permissive unless the store was built with strict
// mode, in which case they must appear in the transition table.
func (s *Store) Transition(key string, to models.WorkflowState, user string) error {
	if !to.Valid() {
		return fmt.Errorf("transition %q: %q: %w", key, to, ErrInvalidState)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[key]
	if !ok {
		return fmt.Errorf("transition %q: %w", key, ErrNotFound)
	}
	if s.strict && !transitionAllowed(doc.WorkflowState, to) {
		return fmt.Errorf("transition %q: %s -> %s: %w", key, doc.WorkflowState, to, ErrInvalidTransition)
	}

	doc.WorkflowState = to
	doc.History = append(doc.History, models.HistoryEntry{
		State:     string(to),
		Timestamp: s.clock.Now(),
		User:      user,
	})
	return nil
}

// Reupload replaces the file attributes and expiry date of an existing
// document. A fresh expiry is the only thing that cures an expired
// classification, so the renewal flag is cleared and the document goes back
// to submitted for review.
func (s *Store) Reupload(key, mimeType string, sizeBytes int64, fileURL string, expiry *time.Time, user string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[key]
	if !ok {
		return fmt.Errorf("reupload %q: %w", key, ErrNotFound)
	}

	now := s.clock.Now()
	doc.MimeType = mimeType
	doc.SizeBytes = sizeBytes
	doc.FileURL = fileURL
	doc.ExpiryDate = expiry
	doc.UploadDate = now
	doc.RenewalRequested = false
	doc.RenewalRequestDate = nil
	doc.WorkflowState = models.WorkflowSubmitted
	doc.History = append(doc.History, models.HistoryEntry{
		State:     string(models.WorkflowSubmitted),
		Timestamp: now,
		User:      user,
	})
	doc.Status = Classify(doc.ExpiryDate, now, s.warnDays)
	return nil
}

// Reclassify recomputes the derived status of every document against now.
// It runs on the session's periodic tick and after every mutation.
func (s *Store) Reclassify(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.docs {
		doc.Status = Classify(doc.ExpiryDate, now, s.warnDays)
	}
}

func transitionAllowed(from, to models.WorkflowState) bool {
	for _, next := range strictTransitionTable[from] {
		if next == to {
			return true
		}
	}
	return false
}

// copyDoc deep-copies the record so callers cannot mutate store internals
// (history in particular is append-only and must stay that way).
func copyDoc(doc *models.DocumentRecord) models.DocumentRecord {
	out := *doc
	if doc.ExpiryDate != nil {
		t := *doc.ExpiryDate
		out.ExpiryDate = &t
	}
	if doc.RenewalRequestDate != nil {
		t := *doc.RenewalRequestDate
		out.RenewalRequestDate = &t
	}
	out.History = make([]models.HistoryEntry, len(doc.History))
	copy(out.History, doc.History)
	return out
}
