package lifecycle

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rickd091/mti-portal/internal/models"
)

func TestRequestRenewalSetsFlagAndHistory(t *testing.T) {
	clock := newManualClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	store := testStore(clock)

	expiry := clock.Now().AddDate(0, 0, 15)
	if err := store.Insert(models.DocumentRecord{Key: "k", Name: "Doc", ExpiryDate: &expiry}, "u"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	repeat, err := store.RequestRenewal("k", "u")
	if err != nil {
		t.Fatalf("request renewal: %v", err)
	}
	if repeat {
		t.Fatalf("first request must not be a repeat")
	}

	doc, _ := store.Get("k")
	if !doc.RenewalRequested {
		t.Fatalf("renewal flag not set")
	}
	if doc.RenewalRequestDate == nil || !doc.RenewalRequestDate.Equal(clock.Now()) {
		t.Fatalf("renewal timestamp not stamped: %v", doc.RenewalRequestDate)
	}
	last := doc.History[len(doc.History)-1]
	if last.State != models.HistoryStateRenewalRequested {
		t.Fatalf("expected renewal_requested history entry, got %s", last.State)
	}
	// Renewal does not cure expiry classification.
	if doc.Status != models.StatusExpiringSoon {
		t.Fatalf("renewal request must not change status, got %s", doc.Status)
	}
}

func TestRequestRenewalUnknownKeyLeavesStoreUnchanged(t *testing.T) {
	clock := newManualClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	store := testStore(clock)

	expiry := clock.Now().AddDate(0, 0, 15)
	if err := store.Insert(models.DocumentRecord{Key: "k", Name: "Doc", ExpiryDate: &expiry}, "u"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	before := store.List()

	_, err := store.RequestRenewal("missing", "u")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	after := store.List()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("failed renewal mutated the store:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestRequestRenewalRepeatRefreshesTimestampOnly(t *testing.T) {
	clock := newManualClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	store := testStore(clock)

	if err := store.Insert(models.DocumentRecord{Key: "k", Name: "Doc"}, "u"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if _, err := store.RequestRenewal("k", "u"); err != nil {
		t.Fatalf("first request: %v", err)
	}
	first, _ := store.Get("k")

	clock.Advance(time.Hour)
	repeat, err := store.RequestRenewal("k", "u")
	if err != nil {
		t.Fatalf("second request: %v", err)
	}
	if !repeat {
		t.Fatalf("second request must report repeat")
	}

	second, _ := store.Get("k")
	if len(second.History) != len(first.History) {
		t.Fatalf("repeat request appended a duplicate history entry")
	}
	if !second.RenewalRequestDate.After(*first.RenewalRequestDate) {
		t.Fatalf("repeat request did not refresh the timestamp")
	}
}
