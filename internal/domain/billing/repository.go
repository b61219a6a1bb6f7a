package billing

import (
	"context"

	"github.com/society/backend/internal/domain/shared/valueobject"
)

// LedgerRepository defines persistence operations for yearly collection ledgers
type LedgerRepository interface {
	FindByYear(ctx context.Context, year int) (*YearCollection, error)
	// ListYears returns every year with a ledger row, descending
	ListYears(ctx context.Context) ([]int, error)
	// RecordPayment atomically adds one collected payment to the year's
	// ledger, creating a zeroed ledger first when the year has none. The
	// row is locked for the duration of the update.
	RecordPayment(ctx context.Context, month valueobject.Month, amount valueobject.Money) error
}
