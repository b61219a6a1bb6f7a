package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/society/backend/internal/domain/billing"
	"github.com/society/backend/internal/domain/notification"
	"github.com/society/backend/internal/domain/resident"
	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/domain/shared/valueobject"
)

// EmailSender delivers payment confirmation mail. Delivery is best-effort;
// callers never fail an operation on a send error.
type EmailSender interface {
	SendPaymentConfirmation(ctx context.Context, to, name, month string, amount decimal.Decimal) error
}

// PaymentService coordinates marking monthly dues as paid and answering
// dues and history queries
type PaymentService struct {
	residents     resident.Repository
	ledger        billing.LedgerRepository
	notifications notification.Repository
	email         EmailSender
	fee           valueobject.Money
	logger        *zap.Logger
	now           func() time.Time
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	residents resident.Repository,
	ledger billing.LedgerRepository,
	notifications notification.Repository,
	email EmailSender,
	fee valueobject.Money,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		residents:     residents,
		ledger:        ledger,
		notifications: notifications,
		email:         email,
		fee:           fee,
		logger:        logger,
		now:           time.Now,
	}
}

// MarkPaid records one month's maintenance payment for a resident. The
// resident record and the yearly ledger must both be updated for the
// operation to succeed; notification and email delivery are best-effort.
func (s *PaymentService) MarkPaid(ctx context.Context, req MarkPaidRequest) (*MarkPaidResponse, error) {
	residentID, err := uuid.Parse(req.ResidentID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid user ID")
	}
	month, err := valueobject.ParseMonth(req.Month)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid month: %v", err))
	}

	r, err := s.residents.FindByID(ctx, residentID)
	if err != nil {
		return nil, err
	}
	if r.IsAdmin() {
		return nil, shared.NewDomainError("FORBIDDEN", "Admin accounts have no maintenance dues")
	}

	now := s.now()
	expectedVersion := r.GetVersion()
	entry, err := r.MarkEntryPaid(month, s.fee, now)
	if err != nil {
		return nil, err
	}

	if err := s.residents.UpdateWithVersion(ctx, r, expectedVersion); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, s.resolveConflict(ctx, residentID, month)
		}
		return nil, err
	}

	if err := s.ledger.RecordPayment(ctx, month, s.fee); err != nil {
		s.logger.Error("Failed to record payment in yearly ledger",
			zap.String("resident_id", residentID.String()),
			zap.String("month", month.String()),
			zap.Error(err))
		return nil, err
	}

	s.notifyPayment(ctx, r, month, entry.Amount, entry.PaidDate)

	return &MarkPaidResponse{
		Message:  fmt.Sprintf("Payment for %s marked as paid for house %s", month, r.HouseNo),
		HouseNo:  r.HouseNo,
		Name:     r.Name,
		Month:    month.String(),
		Amount:   entry.Amount,
		PaidDate: now,
	}, nil
}

// resolveConflict reloads the resident after a version check failure to tell
// a lost double-payment race apart from an unrelated concurrent update
func (s *PaymentService) resolveConflict(ctx context.Context, residentID uuid.UUID, month valueobject.Month) error {
	fresh, err := s.residents.FindByID(ctx, residentID)
	if err != nil {
		return shared.ErrConcurrencyConflict
	}
	if e := fresh.PaymentEntries.EntryFor(month); e != nil && e.IsPaid() {
		return shared.ErrAlreadyPaid
	}
	return shared.ErrConcurrencyConflict
}

// notifyPayment creates the in-app notification and sends the confirmation
// email. Failures are logged and swallowed.
func (s *PaymentService) notifyPayment(ctx context.Context, r *resident.Resident, month valueobject.Month, amount decimal.Decimal, paidDate *time.Time) {
	n, err := notification.NewPaymentNotification(
		r.ID,
		"Payment Received",
		fmt.Sprintf("Your maintenance payment of PKR %s for %s has been received.", amount.StringFixed(0), month),
		notification.TypePaymentConfirmation,
		month,
		amount,
		paidDate,
	)
	if err == nil {
		err = s.notifications.Create(ctx, n)
	}
	if err != nil {
		s.logger.Warn("Failed to create payment notification",
			zap.String("resident_id", r.ID.String()),
			zap.Error(err))
	}

	if s.email != nil && r.Email != "" {
		if err := s.email.SendPaymentConfirmation(ctx, r.Email, r.Name, month.String(), amount); err != nil {
			s.logger.Warn("Failed to send payment confirmation email",
				zap.String("resident_id", r.ID.String()),
				zap.Error(err))
		}
	}
}

// GetDues computes the outstanding balance for a resident. Missing NotPaid
// entries inside the billable window are initialized on the stored record.
func (s *PaymentService) GetDues(ctx context.Context, residentID uuid.UUID) (*DuesResponse, error) {
	r, err := s.residents.FindByID(ctx, residentID)
	if err != nil {
		return nil, err
	}
	if r.IsAdmin() {
		return nil, shared.NewDomainError("FORBIDDEN", "Admin accounts have no maintenance dues")
	}

	nowMonth := valueobject.MonthOf(s.now())
	r = s.ensureEntries(ctx, r, nowMonth)

	dues := billing.ComputeDues(r, nowMonth, s.fee)
	resp := ToDuesResponse(r, dues, s.fee.Amount())
	return &resp, nil
}

// GetPaymentHistory returns the resident's chronological payment record
func (s *PaymentService) GetPaymentHistory(ctx context.Context, residentID uuid.UUID) (*PaymentHistoryResponse, error) {
	r, err := s.residents.FindByID(ctx, residentID)
	if err != nil {
		return nil, err
	}
	if r.IsAdmin() {
		return nil, shared.NewDomainError("FORBIDDEN", "Admin accounts have no maintenance dues")
	}

	r = s.ensureEntries(ctx, r, valueobject.MonthOf(s.now()))

	entries := r.PaymentEntries.Sorted()
	payments := make([]PaymentEntryResponse, 0, len(entries))
	for _, e := range entries {
		payments = append(payments, ToPaymentEntryResponse(e))
	}
	return &PaymentHistoryResponse{
		HouseNo:  r.HouseNo,
		Name:     r.Name,
		Payments: payments,
	}, nil
}

// ensureEntries lazily fills missing NotPaid entries up to the current month
// and persists the record. The write is version-checked so a snapshot loaded
// before a concurrent MarkPaid can never overwrite the committed payment;
// when the version check loses, the fresh row is used instead and the write
// is dropped. Read paths still work when persisting fails.
func (s *PaymentService) ensureEntries(ctx context.Context, r *resident.Resident, now valueobject.Month) *resident.Resident {
	expectedVersion := r.GetVersion()
	if r.EnsureEntriesThrough(now, s.fee) == 0 {
		return r
	}
	err := s.residents.UpdateWithVersion(ctx, r, expectedVersion)
	if err == nil {
		return r
	}
	if errors.Is(err, shared.ErrConcurrencyConflict) {
		fresh, ferr := s.residents.FindByID(ctx, r.ID)
		if ferr != nil {
			s.logger.Warn("Failed to reload resident after losing entry-init race",
				zap.String("resident_id", r.ID.String()),
				zap.Error(ferr))
			return r
		}
		fresh.EnsureEntriesThrough(now, s.fee)
		return fresh
	}
	s.logger.Warn("Failed to persist initialized payment entries",
		zap.String("resident_id", r.ID.String()),
		zap.Error(err))
	return r
}
