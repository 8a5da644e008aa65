package lifecycle

import (
	"testing"
	"time"

	"github.com/rickd091/mti-portal/internal/models"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	docs := []models.DocumentRecord{
		{Key: "a", Name: "A", ExpiryDate: daysFrom(now, 90)},
		{Key: "b", Name: "B", ExpiryDate: daysFrom(now, 10)},
		{Key: "c", Name: "C", ExpiryDate: daysFrom(now, -5)},
		{Key: "d", Name: "D"},
	}

	summary := Summarize(docs, now, 30)
	if summary.Total != 4 {
		t.Fatalf("expected total 4, got %d", summary.Total)
	}
	if summary.RequiresAction != 2 {
		t.Fatalf("expected 2 requiring action, got %d", summary.RequiresAction)
	}
	if summary.ByStatus[models.StatusValid] != 2 ||
		summary.ByStatus[models.StatusExpiringSoon] != 1 ||
		summary.ByStatus[models.StatusExpired] != 1 {
		t.Fatalf("unexpected status counts: %v", summary.ByStatus)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, time.Now(), 30)
	if summary.Total != 0 || summary.RequiresAction != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
	if len(summary.ByStatus) != 3 {
		t.Fatalf("expected all three statuses present, got %v", summary.ByStatus)
	}
}
