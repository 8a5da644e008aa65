package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SessionConfig configures one application session.
type SessionConfig struct {
	WarningThresholdDays int
	StrictTransitions    bool
	ReclassifyInterval   time.Duration
	AutoHideDuration     time.Duration
	MaxRetained          int
	Clock                Clock
}

// Session owns the document store, the event feed and the periodic
// re-classification task for one open accreditation application. Sessions are
// independent: parallel applications (and tests) never share state.
//
// The re-classification ticker is scoped to the session. Close cancels it on
// every exit path; there is no dangling timer after teardown. Between ticks a
// document that crosses an expiry boundary stays misclassified until the next
// pass, so staleness is bounded by the tick interval.
type Session struct {
	store    *Store
	feed     *Feed
	clock    Clock
	warnDays int
	logger   *zap.Logger

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

func NewSession(cfg SessionConfig, logger *zap.Logger) (*Session, error) {
	if cfg.ReclassifyInterval <= 0 {
		return nil, fmt.Errorf("new session: reclassify interval must be positive, got %s", cfg.ReclassifyInterval)
	}
	if cfg.WarningThresholdDays < 0 {
		return nil, fmt.Errorf("new session: warning threshold must not be negative, got %d", cfg.WarningThresholdDays)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock()
	}

	s := &Session{
		store: NewStore(StoreConfig{
			WarningThresholdDays: cfg.WarningThresholdDays,
			StrictTransitions:    cfg.StrictTransitions,
			Clock:                clock,
		}),
		feed: NewFeed(FeedConfig{
			AutoHideDuration: cfg.AutoHideDuration,
			MaxRetained:      cfg.MaxRetained,
			Clock:            clock,
		}),
		clock:    clock,
		warnDays: cfg.WarningThresholdDays,
		logger:   logger,
		done:     make(chan struct{}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.run(ctx, cfg.ReclassifyInterval)
	return s, nil
}

func (s *Session) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer close(s.done)

	for {
		select {
		case <-ticker.C:
			s.Reclassify()
		case <-ctx.Done():
			return
		}
	}
}

// Store returns the session's document store.
func (s *Session) Store() *Store { return s.store }

// Feed returns the session's transient event feed.
func (s *Session) Feed() *Feed { return s.feed }

// Reclassify recomputes every document's derived status. It runs on the
// periodic tick and must also be called after every document-set mutation.
func (s *Session) Reclassify() {
	s.store.Reclassify(s.clock.Now())
	if s.logger != nil {
		s.logger.Debug("Documents reclassified", zap.Int("count", s.store.Len()))
	}
}

// Notifications derives the current notification list from the store.
func (s *Session) Notifications(showAll bool) []Notification {
	return ComputeNotifications(s.store.List(), s.clock.Now(), s.warnDays, showAll)
}

// Summary rolls up the classified document set.
func (s *Session) Summary() Summary {
	return Summarize(s.store.List(), s.clock.Now(), s.warnDays)
}

// Close stops the re-classification task and waits for it to exit. Safe to
// call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done
	})
}
