package billing

import (
	"github.com/shopspring/decimal"

	"github.com/society/backend/internal/domain/resident"
	"github.com/society/backend/internal/domain/shared/valueobject"
)

// Dues is the computed outstanding balance for one resident at a point in time
type Dues struct {
	TotalDues    decimal.Decimal     `json:"total_dues"`
	MonthsUnpaid int                 `json:"months_unpaid"`
	UnpaidMonths []valueobject.Month `json:"unpaid_months"`
}

// RequiredMonths returns every month from the anchor through now, both
// inclusive, rolling over year boundaries. An anchor after now yields an
// empty slice.
func RequiredMonths(anchor, now valueobject.Month) []valueobject.Month {
	if anchor.IsZero() || now.IsZero() || anchor.After(now) {
		return nil
	}
	months := make([]valueobject.Month, 0, anchor.MonthsUntil(now)+1)
	for m := anchor; !m.After(now); m = m.Next() {
		months = append(months, m)
	}
	return months
}

// ComputeDues derives the outstanding balance for a resident: every month in
// the required window without a Paid entry owes the monthly fee. Entries
// outside the window (before the anchor or in the future) never count, so a
// stale stored list cannot inflate or deflate the result.
func ComputeDues(r *resident.Resident, now valueobject.Month, fee valueobject.Money) Dues {
	required := RequiredMonths(r.AnchorMonth, now)
	paid := r.PaymentEntries.PaidMonths()

	unpaid := make([]valueobject.Month, 0, len(required))
	for _, m := range required {
		if !paid[m] {
			unpaid = append(unpaid, m)
		}
	}

	return Dues{
		TotalDues:    fee.Mul(int64(len(unpaid))).Amount(),
		MonthsUnpaid: len(unpaid),
		UnpaidMonths: unpaid,
	}
}
