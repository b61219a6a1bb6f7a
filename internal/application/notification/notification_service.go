package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/society/backend/internal/domain/notification"
)

// listLimit caps how many notifications a single fetch returns
const listLimit = 50

// NotificationResponse is one in-app notification. Month, amount and paid
// date are populated for billing notifications only.
type NotificationResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Type      string          `json:"type"`
	Month     string          `json:"month,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	PaidDate  *time.Time      `json:"paid_date,omitempty"`
	Read      bool            `json:"read"`
	CreatedAt time.Time       `json:"created_at"`
}

// NotificationService manages a resident's in-app notifications
type NotificationService struct {
	notifications notification.Repository
	logger        *zap.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications notification.Repository, logger *zap.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, logger: logger}
}

// List returns the resident's newest notifications
func (s *NotificationService) List(ctx context.Context, residentID uuid.UUID) ([]NotificationResponse, error) {
	items, err := s.notifications.ListByResident(ctx, residentID, listLimit)
	if err != nil {
		return nil, err
	}
	out := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, NotificationResponse{
			ID:        n.ID.String(),
			Title:     n.Title,
			Message:   n.Message,
			Type:      string(n.Type),
			Month:     n.Month.String(),
			Amount:    n.Amount,
			PaidDate:  n.PaidDate,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

// UnreadCount returns how many notifications the resident has not read
func (s *NotificationService) UnreadCount(ctx context.Context, residentID uuid.UUID) (int64, error) {
	return s.notifications.CountUnread(ctx, residentID)
}

// MarkRead flags one notification as read. The resident scoping prevents
// marking someone else's notification.
func (s *NotificationService) MarkRead(ctx context.Context, id, residentID uuid.UUID) error {
	return s.notifications.MarkRead(ctx, id, residentID)
}

// MarkAllRead flags every notification for the resident as read
func (s *NotificationService) MarkAllRead(ctx context.Context, residentID uuid.UUID) error {
	return s.notifications.MarkAllRead(ctx, residentID)
}

// Delete removes one notification
func (s *NotificationService) Delete(ctx context.Context, id, residentID uuid.UUID) error {
	return s.notifications.Delete(ctx, id, residentID)
}

// ClearRead removes all read notifications and returns how many were deleted
func (s *NotificationService) ClearRead(ctx context.Context, residentID uuid.UUID) (int64, error) {
	deleted, err := s.notifications.DeleteRead(ctx, residentID)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("Cleared read notifications",
		zap.String("resident_id", residentID.String()),
		zap.Int64("deleted", deleted))
	return deleted, nil
}
