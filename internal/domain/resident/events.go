package resident

import (
	"github.com/society/backend/internal/domain/shared"
)

const (
	EventResidentRegistered = "resident.registered"
	EventPaymentMarked      = "resident.payment_marked"
)

// ResidentRegisteredEvent is raised when a new resident is registered
type ResidentRegisteredEvent struct {
	shared.BaseDomainEvent
	HouseNo     string `json:"house_no"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	AnchorMonth string `json:"anchor_month"`
}

// NewResidentRegisteredEvent creates a resident registered event
func NewResidentRegisteredEvent(r *Resident) *ResidentRegisteredEvent {
	return &ResidentRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventResidentRegistered, "Resident", r.ID),
		HouseNo:         r.HouseNo,
		Name:            r.Name,
		Email:           r.Email,
		AnchorMonth:     r.AnchorMonth.String(),
	}
}

// PaymentMarkedEvent is raised when a monthly dues entry transitions to Paid
type PaymentMarkedEvent struct {
	shared.BaseDomainEvent
	HouseNo string `json:"house_no"`
	Month   string `json:"month"`
	Amount  string `json:"amount"`
}

// NewPaymentMarkedEvent creates a payment marked event
func NewPaymentMarkedEvent(r *Resident, entry PaymentEntry) *PaymentMarkedEvent {
	return &PaymentMarkedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPaymentMarked, "Resident", r.ID),
		HouseNo:         r.HouseNo,
		Month:           entry.Month.String(),
		Amount:          entry.Amount.String(),
	}
}
