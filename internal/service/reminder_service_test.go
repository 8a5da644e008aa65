package service

import (
	"strings"
	"testing"
	"time"

	"github.com/rickd091/mti-portal/internal/lifecycle"
	"github.com/rickd091/mti-portal/internal/models"
)

func TestReminderBody(t *testing.T) {
	notifications := []lifecycle.Notification{
		{
			DocumentName:    "Safety Certificate",
			Category:        models.CategoryCompliance,
			Status:          models.StatusExpired,
			DaysUntilExpiry: -3,
			RequiresAction:  true,
		},
		{
			DocumentName:    "Training License",
			Category:        models.CategoryInstitutional,
			Status:          models.StatusExpiringSoon,
			DaysUntilExpiry: 12,
			RequiresAction:  true,
		},
	}

	body := reminderBody("Mombasa Maritime Academy", notifications)

	if !strings.Contains(body, "Mombasa Maritime Academy") {
		t.Fatal("body should address the institution by name")
	}
	if !strings.Contains(body, "Safety Certificate") || !strings.Contains(body, "has expired") {
		t.Fatal("expired document should be called out as expired")
	}
	if !strings.Contains(body, "Training License") || !strings.Contains(body, "expires in 12 day(s)") {
		t.Fatal("expiring document should state the days remaining")
	}
}

func TestCertificateNumberFormat(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	no := certificateNumber(now)

	if !strings.HasPrefix(no, "MTI-2026-") {
		t.Fatalf("unexpected certificate number %q", no)
	}
	if len(no) != len("MTI-2026-")+8 {
		t.Fatalf("unexpected certificate number length: %q", no)
	}
	if no == certificateNumber(now) {
		t.Fatal("consecutive certificate numbers should not collide")
	}
}

func TestPaymentReferenceFormat(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	ref := paymentReference(now)

	if !strings.HasPrefix(ref, "PAY-20260315-") {
		t.Fatalf("unexpected payment reference %q", ref)
	}
	if ref == paymentReference(now) {
		t.Fatal("consecutive payment references should not collide")
	}
}
