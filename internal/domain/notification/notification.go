package notification

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/domain/shared/valueobject"
)

// Type classifies a notification for client-side rendering
type Type string

const (
	TypePaymentConfirmation Type = "payment_confirmation"
	TypeDuesReminder        Type = "dues_reminder"
	TypeAnnouncement        Type = "announcement"
)

// Notification is an in-app message for one resident. Billing
// notifications carry the structured month, amount and paid date they
// refer to alongside the rendered message text.
type Notification struct {
	shared.BaseEntity
	ResidentID uuid.UUID         `json:"resident_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	Type       Type              `json:"type"`
	Month      valueobject.Month `json:"month,omitempty"`
	Amount     decimal.Decimal   `json:"amount"`
	PaidDate   *time.Time        `json:"paid_date,omitempty"`
	Read       bool              `json:"read"`
}

// NewNotification creates a plain notification for a resident
func NewNotification(residentID uuid.UUID, title, message string, typ Type) (*Notification, error) {
	if residentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Resident ID cannot be empty")
	}
	if message == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Message cannot be empty")
	}
	if typ == "" {
		typ = TypeAnnouncement
	}
	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		ResidentID: residentID,
		Title:      title,
		Message:    message,
		Type:       typ,
	}, nil
}

// NewPaymentNotification creates a billing notification carrying the month
// and amount it concerns. The paid date is set only for confirmations;
// reminders refer to money still owed.
func NewPaymentNotification(
	residentID uuid.UUID,
	title, message string,
	typ Type,
	month valueobject.Month,
	amount decimal.Decimal,
	paidDate *time.Time,
) (*Notification, error) {
	if month.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Month cannot be empty")
	}
	n, err := NewNotification(residentID, title, message, typ)
	if err != nil {
		return nil, err
	}
	n.Month = month
	n.Amount = amount
	n.PaidDate = paidDate
	return n, nil
}

// MarkRead flags the notification as read
func (n *Notification) MarkRead() {
	n.Read = true
}
