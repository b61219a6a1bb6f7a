package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/domain/shared/valueobject"
)

func TestNewYearCollection(t *testing.T) {
	c, err := NewYearCollection(2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, c.Year)
	assert.True(t, c.TotalAmount.IsZero())
	require.Len(t, c.MonthlyBreakdown, 12)
	assert.Equal(t, "January", c.MonthlyBreakdown[0].Month)
	assert.Equal(t, "December", c.MonthlyBreakdown[11].Month)
	for _, slot := range c.MonthlyBreakdown {
		assert.True(t, slot.Amount.IsZero())
		assert.Zero(t, slot.PaymentsCount)
	}

	_, err = NewYearCollection(0)
	assert.Error(t, err)
}

func TestYearCollectionRecord(t *testing.T) {
	now := time.Date(2025, time.September, 3, 12, 0, 0, 0, time.UTC)
	fee := valueobject.NewMoneyPKRFromInt(3000)

	t.Run("updates slot and total together", func(t *testing.T) {
		c, err := NewYearCollection(2025)
		require.NoError(t, err)

		require.NoError(t, c.Record(valueobject.NewMonth(2025, time.July), fee, now))

		july := c.SlotFor(time.July)
		require.NotNil(t, july)
		assert.True(t, july.Amount.Equal(decimal.NewFromInt(3000)))
		assert.Equal(t, 1, july.PaymentsCount)
		assert.True(t, c.TotalAmount.Equal(decimal.NewFromInt(3000)))
		assert.Equal(t, now, c.LastUpdated)
	})

	t.Run("repeated payments for the same month accumulate", func(t *testing.T) {
		c, err := NewYearCollection(2025)
		require.NoError(t, err)
		july := valueobject.NewMonth(2025, time.July)

		require.NoError(t, c.Record(july, fee, now))
		require.NoError(t, c.Record(july, fee, now.Add(time.Minute)))

		slot := c.SlotFor(time.July)
		assert.True(t, slot.Amount.Equal(decimal.NewFromInt(6000)))
		assert.Equal(t, 2, slot.PaymentsCount)
		assert.True(t, c.TotalAmount.Equal(decimal.NewFromInt(6000)))
	})

	t.Run("total always equals slot sum", func(t *testing.T) {
		c, err := NewYearCollection(2025)
		require.NoError(t, err)
		for _, m := range []time.Month{time.January, time.July, time.July, time.December} {
			require.NoError(t, c.Record(valueobject.NewMonth(2025, m), fee, now))
		}
		sum := decimal.Zero
		for _, slot := range c.MonthlyBreakdown {
			sum = sum.Add(slot.Amount)
		}
		assert.True(t, c.TotalAmount.Equal(sum))
	})

	t.Run("rejects month from another year", func(t *testing.T) {
		c, err := NewYearCollection(2025)
		require.NoError(t, err)
		err = c.Record(valueobject.NewMonth(2024, time.December), fee, now)
		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_YEAR", de.Code)
		assert.True(t, c.TotalAmount.IsZero())
	})

	t.Run("increments version and records event", func(t *testing.T) {
		c, err := NewYearCollection(2025)
		require.NoError(t, err)
		before := c.GetVersion()
		require.NoError(t, c.Record(valueobject.NewMonth(2025, time.May), fee, now))
		assert.Equal(t, before+1, c.GetVersion())
		require.Len(t, c.GetDomainEvents(), 1)
		assert.Equal(t, EventPaymentRecorded, c.GetDomainEvents()[0].EventType())
	})
}
