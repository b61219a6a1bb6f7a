package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/society/backend/internal/domain/billing"
	"github.com/society/backend/internal/domain/notification"
	"github.com/society/backend/internal/domain/resident"
	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/domain/shared/valueobject"
)

// tickerInterval is how often the scheduler checks whether it is time to run
const tickerInterval = 1 * time.Minute

// ReminderSchedulerConfig holds configuration for the dues reminder scheduler
type ReminderSchedulerConfig struct {
	// Enabled indicates if the reminder scheduler is enabled
	Enabled bool
	// Hour is the hour of day (0-23) for the reminder run
	Hour int
	// Minute is the minute (0-59) for the reminder run
	Minute int
}

// DefaultReminderSchedulerConfig returns defaults running at 9:00 AM on the
// first day of each month
func DefaultReminderSchedulerConfig() ReminderSchedulerConfig {
	return ReminderSchedulerConfig{
		Enabled: true,
		Hour:    9,
		Minute:  0,
	}
}

// ReminderScheduler sends a monthly dues reminder notification to every
// resident who still owes maintenance. It also rolls each resident's
// payment entries forward so the freshly started month appears as due.
type ReminderScheduler struct {
	config        ReminderSchedulerConfig
	residents     resident.Repository
	notifications notification.Repository
	fee           valueobject.Money
	logger        *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	lastRunAt *time.Time

	now func() time.Time
}

// NewReminderScheduler creates a new dues reminder scheduler
func NewReminderScheduler(
	config ReminderSchedulerConfig,
	residents resident.Repository,
	notifications notification.Repository,
	fee valueobject.Money,
	logger *zap.Logger,
) *ReminderScheduler {
	return &ReminderScheduler{
		config:        config,
		residents:     residents,
		notifications: notifications,
		fee:           fee,
		logger:        logger,
		now:           time.Now,
	}
}

// Start starts the scheduler loop
func (s *ReminderScheduler) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.logger.Info("Dues reminder scheduler disabled")
		return nil
	}

	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Dues reminder scheduler started",
		zap.Int("hour", s.config.Hour),
		zap.Int("minute", s.config.Minute),
	)
	return nil
}

// Stop stops the scheduler and waits for an in-flight run to finish
func (s *ReminderScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Dues reminder scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Dues reminder scheduler stop timed out")
		return ctx.Err()
	}
}

// LastRunAt returns when the last sweep ran, or nil if it never has
func (s *ReminderScheduler) LastRunAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRunAt
}

func (s *ReminderScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(tickerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if s.shouldRun(now) {
				if err := s.RunOnce(ctx); err != nil {
					s.logger.Error("Dues reminder sweep failed", zap.Error(err))
				}
			}
		}
	}
}

// shouldRun fires on the first day of each month at the configured time
func (s *ReminderScheduler) shouldRun(now time.Time) bool {
	return now.Day() == 1 && now.Hour() == s.config.Hour && now.Minute() == s.config.Minute
}

// RunOnce performs a single reminder sweep: every resident's payment
// entries are rolled forward to the current month, and residents with
// unpaid months get an in-app reminder.
func (s *ReminderScheduler) RunOnce(ctx context.Context) error {
	started := s.now()
	s.mu.Lock()
	s.lastRunAt = &started
	s.mu.Unlock()

	nowMonth := valueobject.MonthOf(started)
	residents, err := s.residents.ListByRole(ctx, resident.RoleResident)
	if err != nil {
		return err
	}

	reminded := 0
	for _, r := range residents {
		expectedVersion := r.GetVersion()
		if added := r.EnsureEntriesThrough(nowMonth, s.fee); added > 0 {
			if err := s.residents.UpdateWithVersion(ctx, r, expectedVersion); err != nil {
				if !errors.Is(err, shared.ErrConcurrencyConflict) {
					s.logger.Warn("Failed to roll payment entries forward",
						zap.String("resident_id", r.ID.String()),
						zap.Error(err))
					continue
				}
				// a concurrent payment won the version check; remind off
				// the fresh row and leave the write to the next sweep
				fresh, ferr := s.residents.FindByID(ctx, r.ID)
				if ferr != nil {
					s.logger.Warn("Failed to reload resident after losing roll-forward race",
						zap.String("resident_id", r.ID.String()),
						zap.Error(ferr))
					continue
				}
				fresh.EnsureEntriesThrough(nowMonth, s.fee)
				r = fresh
			}
		}

		dues := billing.ComputeDues(r, nowMonth, s.fee)
		if dues.MonthsUnpaid == 0 {
			continue
		}

		n, err := notification.NewPaymentNotification(
			r.ID,
			"Maintenance dues reminder",
			reminderMessage(nowMonth, dues),
			notification.TypeDuesReminder,
			nowMonth,
			dues.TotalDues,
			nil,
		)
		if err != nil {
			s.logger.Warn("Failed to build reminder notification",
				zap.String("resident_id", r.ID.String()),
				zap.Error(err))
			continue
		}
		if err := s.notifications.Create(ctx, n); err != nil {
			s.logger.Warn("Failed to store reminder notification",
				zap.String("resident_id", r.ID.String()),
				zap.Error(err))
			continue
		}
		reminded++
	}

	s.logger.Info("Dues reminder sweep completed",
		zap.String("month", nowMonth.String()),
		zap.Int("residents", len(residents)),
		zap.Int("reminded", reminded),
		zap.Duration("took", s.now().Sub(started)),
	)
	return nil
}

func reminderMessage(nowMonth valueobject.Month, dues billing.Dues) string {
	if dues.MonthsUnpaid == 1 {
		return fmt.Sprintf("Your maintenance payment of PKR %s for %s is due. Please arrange payment with your collector.",
			dues.TotalDues.StringFixed(0), nowMonth.String())
	}
	return fmt.Sprintf("You have %d months of unpaid maintenance totalling PKR %s as of %s. Please arrange payment with your collector.",
		dues.MonthsUnpaid, dues.TotalDues.StringFixed(0), nowMonth.String())
}
