package notification

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for notifications
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	// ListByResident returns the newest notifications first, capped at limit
	ListByResident(ctx context.Context, residentID uuid.UUID, limit int) ([]*Notification, error)
	CountUnread(ctx context.Context, residentID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, residentID uuid.UUID) error
	MarkAllRead(ctx context.Context, residentID uuid.UUID) error
	Delete(ctx context.Context, id, residentID uuid.UUID) error
	// DeleteRead removes every read notification for the resident and
	// returns the number deleted
	DeleteRead(ctx context.Context, residentID uuid.UUID) (int64, error)
}
