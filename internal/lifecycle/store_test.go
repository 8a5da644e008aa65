package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/rickd091/mti-portal/internal/models"
)

func testStore(clock Clock) *Store {
	return NewStore(StoreConfig{WarningThresholdDays: 30, Clock: clock})
}

func TestStoreInsertAndGet(t *testing.T) {
	clock := newManualClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	store := testStore(clock)

	expiry := clock.Now().AddDate(0, 0, 90)
	err := store.Insert(models.DocumentRecord{
		Key:        "registrationCertificate",
		Name:       "Registration Certificate",
		Category:   models.CategoryInstitutional,
		MimeType:   "application/pdf",
		SizeBytes:  1024,
		ExpiryDate: &expiry,
	}, "clerk@mti.example")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	doc, err := store.Get("registrationCertificate")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if doc.WorkflowState != models.WorkflowDraft {
		t.Fatalf("expected default draft state, got %s", doc.WorkflowState)
	}
	if doc.Status != models.StatusValid {
		t.Fatalf("expected valid status, got %s", doc.Status)
	}
	if len(doc.History) != 1 || doc.History[0].State != "draft" {
		t.Fatalf("expected one initial history entry, got %v", doc.History)
	}
}

func TestStoreInsertDuplicateKey(t *testing.T) {
	store := testStore(newManualClock(time.Now()))
	doc := models.DocumentRecord{Key: "k", Name: "Doc"}

	if err := store.Insert(doc, "u"); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if err := store.Insert(doc, "u"); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestStoreListPreservesInsertionOrder(t *testing.T) {
	store := testStore(newManualClock(time.Now()))
	for _, key := range []string{"c", "a", "b"} {
		if err := store.Insert(models.DocumentRecord{Key: key, Name: key}, "u"); err != nil {
			t.Fatalf("insert %s: %v", key, err)
		}
	}

	docs := store.List()
	if len(docs) != 3 || docs[0].Key != "c" || docs[1].Key != "a" || docs[2].Key != "b" {
		t.Fatalf("expected insertion order c,a,b got %v", docs)
	}
}

func TestStorePermissiveTransitions(t *testing.T) {
	store := testStore(newManualClock(time.Now()))
	if err := store.Insert(models.DocumentRecord{Key: "k", Name: "Doc", WorkflowState: models.WorkflowApproved}, "u"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Permissive mode allows even approved -> draft.
	if err := store.Transition("k", models.WorkflowDraft, "admin"); err != nil {
		t.Fatalf("permissive transition rejected: %v", err)
	}

	doc, _ := store.Get("k")
	if doc.WorkflowState != models.WorkflowDraft {
		t.Fatalf("expected draft, got %s", doc.WorkflowState)
	}
	if len(doc.History) != 2 {
		t.Fatalf("expected history to grow to 2, got %d", len(doc.History))
	}
}

func TestStoreStrictTransitions(t *testing.T) {
	store := NewStore(StoreConfig{
		WarningThresholdDays: 30,
		StrictTransitions:    true,
		Clock:                newManualClock(time.Now()),
	})
	if err := store.Insert(models.DocumentRecord{Key: "k", Name: "Doc", WorkflowState: models.WorkflowApproved}, "u"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := store.Transition("k", models.WorkflowDraft, "admin"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for approved -> draft, got %v", err)
	}
	if err := store.Transition("k", models.WorkflowExpired, "admin"); err != nil {
		t.Fatalf("approved -> expired should be allowed in strict mode: %v", err)
	}
}

func TestStoreTransitionInvalidState(t *testing.T) {
	store := testStore(newManualClock(time.Now()))
	if err := store.Insert(models.DocumentRecord{Key: "k", Name: "Doc"}, "u"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.Transition("k", models.WorkflowState("bogus"), "u"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestStoreReturnedCopiesDoNotAliasHistory(t *testing.T) {
	store := testStore(newManualClock(time.Now()))
	if err := store.Insert(models.DocumentRecord{Key: "k", Name: "Doc"}, "u"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	doc, _ := store.Get("k")
	doc.History[0].State = "tampered"

	fresh, _ := store.Get("k")
	if fresh.History[0].State != "draft" {
		t.Fatalf("store history mutated through returned copy")
	}
}

func TestStoreReclassifyTracksClock(t *testing.T) {
	clock := newManualClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	store := testStore(clock)

	expiry := clock.Now().AddDate(0, 0, 45)
	if err := store.Insert(models.DocumentRecord{Key: "k", Name: "Doc", ExpiryDate: &expiry}, "u"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if doc, _ := store.Get("k"); doc.Status != models.StatusValid {
		t.Fatalf("expected valid at 45 days out, got %s", doc.Status)
	}

	clock.Advance(20 * 24 * time.Hour)
	store.Reclassify(clock.Now())
	if doc, _ := store.Get("k"); doc.Status != models.StatusExpiringSoon {
		t.Fatalf("expected expiring_soon at 25 days out, got %s", doc.Status)
	}

	clock.Advance(30 * 24 * time.Hour)
	store.Reclassify(clock.Now())
	if doc, _ := store.Get("k"); doc.Status != models.StatusExpired {
		t.Fatalf("expected expired, got %s", doc.Status)
	}
}

func TestStoreReuploadCuresExpiryAndClearsRenewal(t *testing.T) {
	clock := newManualClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	store := testStore(clock)

	expired := clock.Now().AddDate(0, 0, -10)
	if err := store.Insert(models.DocumentRecord{Key: "k", Name: "Doc", ExpiryDate: &expired}, "u"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := store.RequestRenewal("k", "u"); err != nil {
		t.Fatalf("request renewal: %v", err)
	}

	fresh := clock.Now().AddDate(1, 0, 0)
	if err := store.Reupload("k", "application/pdf", 2048, "/uploads/new.pdf", &fresh, "u"); err != nil {
		t.Fatalf("reupload: %v", err)
	}

	doc, _ := store.Get("k")
	if doc.Status != models.StatusValid {
		t.Fatalf("expected valid after reupload, got %s", doc.Status)
	}
	if doc.RenewalRequested || doc.RenewalRequestDate != nil {
		t.Fatalf("renewal flags should be cleared by reupload")
	}
	if doc.WorkflowState != models.WorkflowSubmitted {
		t.Fatalf("expected submitted after reupload, got %s", doc.WorkflowState)
	}
}
