package lifecycle

import (
	"sync"
	"testing"
	"time"

	"github.com/rickd091/mti-portal/internal/models"
)

func testSessionConfig(clock Clock) SessionConfig {
	return SessionConfig{
		WarningThresholdDays: 30,
		ReclassifyInterval:   time.Hour,
		AutoHideDuration:     5 * time.Second,
		MaxRetained:          3,
		Clock:                clock,
	}
}

func TestNewSessionRejectsBadConfig(t *testing.T) {
	if _, err := NewSession(SessionConfig{ReclassifyInterval: 0}, nil); err == nil {
		t.Fatalf("expected error for zero interval")
	}
	if _, err := NewSession(SessionConfig{ReclassifyInterval: time.Hour, WarningThresholdDays: -1}, nil); err == nil {
		t.Fatalf("expected error for negative threshold")
	}
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	session, err := NewSession(testSessionConfig(nil), nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	session.Close()
	session.Close() // second close must not panic or hang
}

func TestSessionsAreIndependent(t *testing.T) {
	clock := newManualClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	a, err := NewSession(testSessionConfig(clock), nil)
	if err != nil {
		t.Fatalf("session a: %v", err)
	}
	defer a.Close()
	b, err := NewSession(testSessionConfig(clock), nil)
	if err != nil {
		t.Fatalf("session b: %v", err)
	}
	defer b.Close()

	if err := a.Store().Insert(models.DocumentRecord{Key: "k", Name: "Doc"}, "u"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if b.Store().Len() != 0 {
		t.Fatalf("sessions share state")
	}
}

// End-to-end: a document expiring 15 days out with a 30 day threshold shows
// up in the requires-action view, and requesting its renewal flags it without
// curing the classification.
func TestSessionExpiringDocumentScenario(t *testing.T) {
	clock := newManualClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	session, err := NewSession(testSessionConfig(clock), nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	defer session.Close()

	expiry := clock.Now().AddDate(0, 0, 15)
	if err := session.Store().Insert(models.DocumentRecord{
		Key:        "safetyCertificate",
		Name:       "Safety Certificate",
		Category:   models.CategoryCompliance,
		ExpiryDate: &expiry,
	}, "clerk@mti.example"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	session.Reclassify()

	entries := session.Notifications(false)
	if len(entries) != 1 {
		t.Fatalf("expected 1 actionable notification, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Status != models.StatusExpiringSoon || entry.DaysUntilExpiry != 15 {
		t.Fatalf("expected expiring_soon at 15 days, got %s at %d", entry.Status, entry.DaysUntilExpiry)
	}

	repeat, err := session.Store().RequestRenewal("safetyCertificate", "clerk@mti.example")
	if err != nil || repeat {
		t.Fatalf("renewal request: repeat=%v err=%v", repeat, err)
	}

	doc, _ := session.Store().Get("safetyCertificate")
	if !doc.RenewalRequested {
		t.Fatalf("renewal flag not set")
	}
	// Renewal request does not cure expiry; only a re-upload does.
	if doc.Status != models.StatusExpiringSoon {
		t.Fatalf("renewal changed classification to %s", doc.Status)
	}

	summary := session.Summary()
	if summary.RequiresAction != 1 {
		t.Fatalf("expected 1 requiring action, got %d", summary.RequiresAction)
	}
}

// countingClock records how often Now is read; each periodic pass reads it.
type countingClock struct {
	mu    sync.Mutex
	now   time.Time
	reads int
}

func (c *countingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads++
	return c.now
}

func (c *countingClock) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

func TestSessionPeriodicReclassification(t *testing.T) {
	clock := &countingClock{now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	cfg := testSessionConfig(clock)
	cfg.ReclassifyInterval = 10 * time.Millisecond
	session, err := NewSession(cfg, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	defer session.Close()

	baseline := clock.Reads()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if clock.Reads() > baseline {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("periodic reclassification never ran")
}
