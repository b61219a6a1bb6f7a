package resident

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/society/backend/internal/domain/shared/valueobject"
)

// PaymentStatus is the binary paid-state of one billed month
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusNotPaid PaymentStatus = "Not Paid"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusPaid || s == PaymentStatusNotPaid
}

// PaymentEntry records the paid-state of a single calendar month for one
// resident. It is a value object within the Resident aggregate, stored as
// JSONB. At most one entry exists per distinct month.
type PaymentEntry struct {
	Month    valueobject.Month `json:"month"`
	Status   PaymentStatus     `json:"status"`
	PaidDate *time.Time        `json:"paid_date"`
	Amount   decimal.Decimal   `json:"amount"`
}

// IsPaid reports whether the entry has been settled
func (p *PaymentEntry) IsPaid() bool {
	return p.Status == PaymentStatusPaid
}

// PaymentEntries is a slice of PaymentEntry that implements the GORM
// Scanner/Valuer pair for JSONB storage. The list is append-only: entries are
// added lazily for months between the anchor and "now" and never truncated.
type PaymentEntries []PaymentEntry

// Value implements driver.Valuer for JSONB storage
func (p PaymentEntries) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB retrieval
func (p *PaymentEntries) Scan(value interface{}) error {
	if value == nil {
		*p = PaymentEntries{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan PaymentEntries: unsupported type")
	}

	if len(bytes) == 0 {
		*p = PaymentEntries{}
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// EntryFor returns the entry recorded for the given month, or nil.
// Callers must use this look-up-then-update-or-append pattern; a blind append
// would break the one-entry-per-month invariant.
func (p PaymentEntries) EntryFor(month valueobject.Month) *PaymentEntry {
	for i := range p {
		if p[i].Month.Equal(month) {
			return &p[i]
		}
	}
	return nil
}

// PaidMonths returns the set of months with a Paid entry
func (p PaymentEntries) PaidMonths() map[valueobject.Month]bool {
	paid := make(map[valueobject.Month]bool)
	for i := range p {
		if p[i].IsPaid() {
			paid[p[i].Month] = true
		}
	}
	return paid
}

// Sorted returns a copy of the entries in chronological order
func (p PaymentEntries) Sorted() PaymentEntries {
	out := make(PaymentEntries, len(p))
	copy(out, p)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Month.Before(out[j].Month)
	})
	return out
}
