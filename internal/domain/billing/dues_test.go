package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/society/backend/internal/domain/resident"
	"github.com/society/backend/internal/domain/shared/valueobject"
)

var fee = valueobject.NewMoneyPKRFromInt(3000)

func testResident(t *testing.T, registered time.Time) *resident.Resident {
	t.Helper()
	r, err := resident.NewResident(resident.NewResidentInput{
		HouseNo:          "B-7",
		Name:             "Imran Siddiqui",
		Email:            "imran@example.com",
		WhatsappNumber:   "+923219876543",
		NIC:              "42201-7654321-3",
		Occupancy:        resident.OccupancyTenant,
		Floor:            "First",
		RegistrationDate: registered,
	})
	require.NoError(t, err)
	return r
}

func TestRequiredMonths(t *testing.T) {
	t.Run("anchor through now inclusive", func(t *testing.T) {
		months := RequiredMonths(
			valueobject.NewMonth(2025, time.June),
			valueobject.NewMonth(2025, time.September),
		)
		require.Len(t, months, 4)
		assert.Equal(t, "June 2025", months[0].String())
		assert.Equal(t, "September 2025", months[3].String())
	})

	t.Run("year rollover", func(t *testing.T) {
		months := RequiredMonths(
			valueobject.NewMonth(2024, time.December),
			valueobject.NewMonth(2025, time.January),
		)
		require.Len(t, months, 2)
		assert.Equal(t, "December 2024", months[0].String())
		assert.Equal(t, "January 2025", months[1].String())
	})

	t.Run("anchor equals now", func(t *testing.T) {
		now := valueobject.NewMonth(2025, time.March)
		months := RequiredMonths(now, now)
		require.Len(t, months, 1)
		assert.True(t, months[0].Equal(now))
	})

	t.Run("anchor after now is empty", func(t *testing.T) {
		months := RequiredMonths(
			valueobject.NewMonth(2025, time.October),
			valueobject.NewMonth(2025, time.September),
		)
		assert.Empty(t, months)
	})
}

func TestComputeDues(t *testing.T) {
	now := valueobject.NewMonth(2025, time.September)

	t.Run("nothing paid owes fee per required month", func(t *testing.T) {
		r := testResident(t, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC))
		dues := ComputeDues(r, now, fee)
		assert.Equal(t, 4, dues.MonthsUnpaid)
		assert.True(t, dues.TotalDues.Equal(decimal.NewFromInt(12000)))
	})

	t.Run("paid months are excluded", func(t *testing.T) {
		r := testResident(t, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC))
		paidAt := time.Date(2025, time.July, 2, 0, 0, 0, 0, time.UTC)
		_, err := r.MarkEntryPaid(valueobject.NewMonth(2025, time.June), fee, paidAt)
		require.NoError(t, err)
		_, err = r.MarkEntryPaid(valueobject.NewMonth(2025, time.July), fee, paidAt)
		require.NoError(t, err)

		dues := ComputeDues(r, now, fee)
		assert.Equal(t, 2, dues.MonthsUnpaid)
		assert.True(t, dues.TotalDues.Equal(decimal.NewFromInt(6000)))
		require.Len(t, dues.UnpaidMonths, 2)
		assert.Equal(t, "August 2025", dues.UnpaidMonths[0].String())
		assert.Equal(t, "September 2025", dues.UnpaidMonths[1].String())
	})

	t.Run("stored entries outside the window never count", func(t *testing.T) {
		r := testResident(t, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC))
		// stale entries: one before the anchor, one in the future
		r.PaymentEntries = append(r.PaymentEntries,
			resident.PaymentEntry{Month: valueobject.NewMonth(2025, time.January), Status: resident.PaymentStatusNotPaid},
			resident.PaymentEntry{Month: valueobject.NewMonth(2026, time.March), Status: resident.PaymentStatusNotPaid},
		)
		dues := ComputeDues(r, now, fee)
		assert.Equal(t, 4, dues.MonthsUnpaid)
		assert.True(t, dues.TotalDues.Equal(decimal.NewFromInt(12000)))
	})

	t.Run("fresh registration owes the current month only", func(t *testing.T) {
		r := testResident(t, time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC))
		dues := ComputeDues(r, now, fee)
		assert.Equal(t, 1, dues.MonthsUnpaid)
		assert.True(t, dues.TotalDues.Equal(decimal.NewFromInt(3000)))
	})

	t.Run("anchor in the future owes nothing", func(t *testing.T) {
		r := testResident(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC))
		dues := ComputeDues(r, now, fee)
		assert.Zero(t, dues.MonthsUnpaid)
		assert.True(t, dues.TotalDues.IsZero())
		assert.Empty(t, dues.UnpaidMonths)
	})
}
