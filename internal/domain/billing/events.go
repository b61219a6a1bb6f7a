package billing

import (
	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/domain/shared/valueobject"
)

const EventPaymentRecorded = "billing.payment_recorded"

// PaymentRecordedEvent is raised when a collected payment lands in the ledger
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	Year   int    `json:"year"`
	Month  string `json:"month"`
	Amount string `json:"amount"`
}

// NewPaymentRecordedEvent creates a payment recorded event
func NewPaymentRecordedEvent(c *YearCollection, month valueobject.Month, amount valueobject.Money) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPaymentRecorded, "YearCollection", c.ID),
		Year:            c.Year,
		Month:           month.String(),
		Amount:          amount.Amount().String(),
	}
}
