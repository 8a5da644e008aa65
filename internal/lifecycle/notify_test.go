package lifecycle

import (
	"testing"
	"time"

	"github.com/rickd091/mti-portal/internal/models"
)

func daysFrom(now time.Time, days int) *time.Time {
	t := now.AddDate(0, 0, days)
	return &t
}

func TestComputeNotificationsRequiresActionOnly(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	docs := []models.DocumentRecord{
		{Key: "a", Name: "A", ExpiryDate: daysFrom(now, 90)},
		{Key: "b", Name: "B", ExpiryDate: daysFrom(now, 15)},
		{Key: "c", Name: "C", ExpiryDate: daysFrom(now, -3)},
		{Key: "d", Name: "D"}, // never expires
	}

	entries := ComputeNotifications(docs, now, 30, false)
	if len(entries) != 2 {
		t.Fatalf("expected 2 actionable entries, got %d", len(entries))
	}
	if entries[0].ID != "b" || entries[1].ID != "c" {
		t.Fatalf("expected input order b,c got %s,%s", entries[0].ID, entries[1].ID)
	}
	if entries[0].DaysUntilExpiry != 15 {
		t.Fatalf("expected 15 days until expiry, got %d", entries[0].DaysUntilExpiry)
	}
	if entries[1].DaysUntilExpiry >= 0 {
		t.Fatalf("expired document must carry negative days, got %d", entries[1].DaysUntilExpiry)
	}
	for _, e := range entries {
		if !e.RequiresAction {
			t.Fatalf("entry %s should require action", e.ID)
		}
	}
}

func TestComputeNotificationsShowAllKeepsInputOrder(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	docs := []models.DocumentRecord{
		{Key: "z", Name: "Z", ExpiryDate: daysFrom(now, 400)},
		{Key: "a", Name: "A", ExpiryDate: daysFrom(now, -1)},
		{Key: "m", Name: "M"},
	}

	entries := ComputeNotifications(docs, now, 30, true)
	if len(entries) != 3 {
		t.Fatalf("showAll must include valid documents, got %d entries", len(entries))
	}
	// Deliberately no sort by urgency: input order is the contract.
	if entries[0].ID != "z" || entries[1].ID != "a" || entries[2].ID != "m" {
		t.Fatalf("entries reordered: %s,%s,%s", entries[0].ID, entries[1].ID, entries[2].ID)
	}
	if entries[0].RequiresAction {
		t.Fatalf("valid document must not require action")
	}
}

func TestComputeNotificationsSkipsMalformedDocs(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	docs := []models.DocumentRecord{
		{Key: "", Name: "No Key", ExpiryDate: daysFrom(now, -1)},
		{Key: "nameless", Name: "", ExpiryDate: daysFrom(now, -1)},
		{Key: "ok", Name: "OK", ExpiryDate: daysFrom(now, -1)},
	}

	entries := ComputeNotifications(docs, now, 30, true)
	if len(entries) != 1 || entries[0].ID != "ok" {
		t.Fatalf("malformed documents must be skipped whole, got %v", entries)
	}
}

func TestFeedFIFOEviction(t *testing.T) {
	clock := newManualClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	feed := NewFeed(FeedConfig{AutoHideDuration: time.Minute, MaxRetained: 2, Clock: clock})

	feed.Push(Event{Severity: SeverityError, Message: "A"})
	feed.Push(Event{Severity: SeverityError, Message: "B"})
	feed.Push(Event{Severity: SeverityError, Message: "C"})

	active := feed.Active()
	if len(active) != 2 || active[0].Message != "B" || active[1].Message != "C" {
		t.Fatalf("expected [B C] after FIFO eviction, got %v", active)
	}
}

func TestFeedAutoExpiry(t *testing.T) {
	clock := newManualClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	feed := NewFeed(FeedConfig{AutoHideDuration: 5 * time.Second, MaxRetained: 3, Clock: clock})

	feed.Push(Event{Severity: SeveritySuccess, Message: "transient"})
	feed.Push(Event{Severity: SeverityError, Message: "sticky", Persistent: true})

	if got := len(feed.Active()); got != 2 {
		t.Fatalf("expected both events active, got %d", got)
	}

	clock.Advance(6 * time.Second)
	active := feed.Active()
	if len(active) != 1 || active[0].Message != "sticky" {
		t.Fatalf("expected only the persistent event to survive, got %v", active)
	}
}

func TestFeedGroupedBuckets(t *testing.T) {
	clock := newManualClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	feed := NewFeed(FeedConfig{AutoHideDuration: time.Minute, MaxRetained: 10, Clock: clock})

	feed.Push(Event{Severity: SeverityError, Message: "one", GroupKey: "g1"})
	feed.Push(Event{Severity: SeverityError, Message: "two", GroupKey: "g1"})
	feed.Push(Event{Severity: SeverityError, Message: "three", GroupKey: "g2"})

	grouped := feed.Grouped()
	if len(grouped["g1"]) != 2 {
		t.Fatalf("expected 2 events under g1, got %d", len(grouped["g1"]))
	}
	if len(grouped["g2"]) != 1 {
		t.Fatalf("expected 1 event under g2, got %d", len(grouped["g2"]))
	}
}

func TestFeedPushAssignsID(t *testing.T) {
	feed := NewFeed(FeedConfig{})
	e := feed.Push(Event{Severity: SeverityInfo, Message: "m"})
	if e.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("expected generated event id")
	}
}
