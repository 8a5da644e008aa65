package lifecycle

import (
	"testing"
	"time"

	"github.com/rickd091/mti-portal/internal/models"
)

func TestClassifyBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	warnDays := 30

	cases := []struct {
		name   string
		expiry time.Time
		want   models.DocumentStatus
	}{
		{"exactly at threshold", now.AddDate(0, 0, 30), models.StatusExpiringSoon},
		{"one day past threshold", now.AddDate(0, 0, 31), models.StatusValid},
		{"one day inside threshold", now.AddDate(0, 0, 29), models.StatusExpiringSoon},
		{"expires today", now.Add(2 * time.Hour), models.StatusExpiringSoon},
		{"expired yesterday", now.AddDate(0, 0, -1), models.StatusExpired},
		{"far future", now.AddDate(1, 0, 0), models.StatusValid},
	}

	for _, tc := range cases {
		got := Classify(&tc.expiry, now, warnDays)
		if got != tc.want {
			t.Fatalf("%s: expected %s got %s", tc.name, tc.want, got)
		}
	}
}

func TestClassifyNoExpiryAlwaysValid(t *testing.T) {
	times := []time.Time{
		time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, now := range times {
		if got := Classify(nil, now, 30); got != models.StatusValid {
			t.Fatalf("nil expiry at %s: expected valid got %s", now, got)
		}
	}
}

func TestDaysUntilExpiryRoundsUp(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if d := DaysUntilExpiry(now.Add(36*time.Hour), now); d != 2 {
		t.Fatalf("36h out: expected 2 got %d", d)
	}
	if d := DaysUntilExpiry(now.AddDate(0, 0, 15), now); d != 15 {
		t.Fatalf("15 days out: expected 15 got %d", d)
	}
	if d := DaysUntilExpiry(now.Add(-25*time.Hour), now); d != -1 {
		t.Fatalf("25h ago: expected -1 got %d", d)
	}
}
