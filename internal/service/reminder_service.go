package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rickd091/mti-portal/internal/lifecycle"
	"github.com/rickd091/mti-portal/internal/mailer"
	"github.com/rickd091/mti-portal/internal/models"
	"github.com/rickd091/mti-portal/internal/repository"

	"go.uber.org/zap"
)

const reminderPageSize = 100

// ReminderService sweeps every institution's documents once a day and
// emails a digest of expired and expiring-soon items.
type ReminderService struct {
	instRepo *repository.InstitutionRepository
	docRepo  *repository.DocumentRepository
	mail     mailer.Mailer
	clock    lifecycle.Clock
	warnDays int
	interval time.Duration
	logger   *zap.Logger

	stopOnce sync.Once
	done     chan struct{}
	stopped  chan struct{}
}

func NewReminderService(
	instRepo *repository.InstitutionRepository,
	docRepo *repository.DocumentRepository,
	mail mailer.Mailer,
	clock lifecycle.Clock,
	warnDays int,
	interval time.Duration,
	logger *zap.Logger,
) *ReminderService {
	if clock == nil {
		clock = lifecycle.SystemClock()
	}
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &ReminderService{
		instRepo: instRepo,
		docRepo:  docRepo,
		mail:     mail,
		clock:    clock,
		warnDays: warnDays,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start launches the background sweep loop. Call Stop to shut it down.
func (s *ReminderService) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.logger.Info("Reminder sweep started", zap.Duration("interval", s.interval))
		for {
			select {
			case <-ticker.C:
				if err := s.Sweep(context.Background()); err != nil {
					s.logger.Error("Reminder sweep failed", zap.Error(err))
				}
			case <-s.done:
				return
			}
		}
	}()
}

func (s *ReminderService) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		<-s.stopped
	})
}

// Sweep runs one pass over all institutions. A failure for one
// institution is logged and does not abort the rest of the pass.
func (s *ReminderService) Sweep(ctx context.Context) error {
	now := s.clock.Now()
	offset := 0
	for {
		institutions, err := s.instRepo.List(ctx, reminderPageSize, offset)
		if err != nil {
			return fmt.Errorf("list institutions: %w", err)
		}
		if len(institutions) == 0 {
			return nil
		}

		for _, inst := range institutions {
			if err := s.remind(ctx, inst, now); err != nil {
				s.logger.Error("Reminder delivery failed",
					zap.String("institution_id", inst.ID.String()),
					zap.Error(err),
				)
			}
		}
		offset += reminderPageSize
	}
}

func (s *ReminderService) remind(ctx context.Context, inst *models.Institution, now time.Time) error {
	if inst.Email == "" {
		return nil
	}

	docs, err := s.docRepo.ListByInstitution(ctx, inst.ID)
	if err != nil {
		return err
	}
	flat := make([]models.DocumentRecord, len(docs))
	for i, d := range docs {
		flat[i] = *d
	}

	notifications := lifecycle.ComputeNotifications(flat, now, s.warnDays, false)
	if len(notifications) == 0 {
		return nil
	}

	subject := fmt.Sprintf("%d document(s) need attention", len(notifications))
	if err := s.mail.Send(inst.Email, subject, reminderBody(inst.Name, notifications)); err != nil {
		return err
	}

	s.logger.Info("Reminder sent",
		zap.String("institution_id", inst.ID.String()),
		zap.Int("documents", len(notifications)),
	)
	return nil
}

func reminderBody(institutionName string, notifications []lifecycle.Notification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Dear %s,</p>", institutionName)
	b.WriteString("<p>The following accreditation documents need attention:</p><ul>")
	for _, n := range notifications {
		if n.Status == models.StatusExpired {
			fmt.Fprintf(&b, "<li><strong>%s</strong> (%s) has expired. Please upload a renewal.</li>",
				n.DocumentName, n.Category)
			continue
		}
		fmt.Fprintf(&b, "<li><strong>%s</strong> (%s) expires in %d day(s).</li>",
			n.DocumentName, n.Category, n.DaysUntilExpiry)
	}
	b.WriteString("</ul><p>Log in to the portal to renew them.</p>")
	return b.String()
}
