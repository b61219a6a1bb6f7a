package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/domain/shared/valueobject"
)

// MonthSlot is one month's totals inside a yearly collection ledger
type MonthSlot struct {
	Month         string          `json:"month"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentsCount int             `json:"payments_count"`
}

// MonthlyBreakdown holds exactly twelve slots in calendar order, January
// through December, stored as a JSONB column.
type MonthlyBreakdown []MonthSlot

// Value implements driver.Valuer for JSONB storage
func (b MonthlyBreakdown) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan implements sql.Scanner for JSONB retrieval
func (b *MonthlyBreakdown) Scan(value interface{}) error {
	if value == nil {
		*b = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan MonthlyBreakdown: not bytes")
	}
	return json.Unmarshal(bytes, b)
}

// newMonthlyBreakdown returns twelve zeroed slots in calendar order
func newMonthlyBreakdown() MonthlyBreakdown {
	names := valueobject.MonthNames()
	breakdown := make(MonthlyBreakdown, 0, len(names))
	for _, name := range names {
		breakdown = append(breakdown, MonthSlot{
			Month:  name,
			Amount: decimal.Zero,
		})
	}
	return breakdown
}

// YearCollection is the aggregate for one calendar year's collected payments.
// The yearly total always equals the sum of the twelve slot amounts; both are
// mutated together inside Record and nowhere else.
type YearCollection struct {
	shared.BaseAggregateRoot
	Year             int              `json:"year"`
	TotalAmount      decimal.Decimal  `json:"total_amount"`
	MonthlyBreakdown MonthlyBreakdown `json:"monthly_breakdown"`
	LastUpdated      time.Time        `json:"last_updated"`
}

// NewYearCollection creates an empty ledger for the given year with all
// twelve slots zeroed
func NewYearCollection(year int) (*YearCollection, error) {
	if year < 1 {
		return nil, shared.NewDomainError("INVALID_YEAR", "Year must be positive")
	}
	return &YearCollection{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Year:              year,
		TotalAmount:       decimal.Zero,
		MonthlyBreakdown:  newMonthlyBreakdown(),
		LastUpdated:       time.Now(),
	}, nil
}

// Record adds one collected payment to the month's slot and the yearly total
func (c *YearCollection) Record(month valueobject.Month, amount valueobject.Money, now time.Time) error {
	if month.Year() != c.Year {
		return shared.NewDomainError("INVALID_YEAR",
			fmt.Sprintf("Month %s does not belong to year %d", month, c.Year))
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount cannot be negative")
	}
	if len(c.MonthlyBreakdown) != 12 {
		c.MonthlyBreakdown = newMonthlyBreakdown()
	}

	slot := &c.MonthlyBreakdown[int(month.Month())-1]
	slot.Amount = slot.Amount.Add(amount.Amount())
	slot.PaymentsCount++

	c.TotalAmount = c.TotalAmount.Add(amount.Amount())
	c.LastUpdated = now
	c.UpdatedAt = now
	c.IncrementVersion()
	c.AddDomainEvent(NewPaymentRecordedEvent(c, month, amount))

	return nil
}

// SlotFor returns the breakdown slot for the given calendar month
func (c *YearCollection) SlotFor(m time.Month) *MonthSlot {
	if len(c.MonthlyBreakdown) != 12 {
		return nil
	}
	return &c.MonthlyBreakdown[int(m)-1]
}
