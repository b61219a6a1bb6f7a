package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/society/backend/internal/domain/billing"
	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/domain/shared/valueobject"
)

// newMockLedgerRepository creates a GormLedgerRepository with a mocked SQL connection
func newMockLedgerRepository(t *testing.T) (*GormLedgerRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormLedgerRepository(gormDB), mock, mockDB
}

func ledgerRows(t *testing.T, year int) *sqlmock.Rows {
	t.Helper()
	ledger, err := billing.NewYearCollection(year)
	require.NoError(t, err)
	breakdown, err := ledger.MonthlyBreakdown.Value()
	require.NoError(t, err)

	return sqlmock.NewRows([]string{
		"id", "version", "year", "total_amount", "monthly_breakdown", "last_updated",
	}).AddRow(uuid.New(), 1, year, decimal.Zero, breakdown, time.Now())
}

func TestGormLedgerRepository_FindByYear(t *testing.T) {
	t.Run("finds existing ledger", func(t *testing.T) {
		repo, mock, mockDB := newMockLedgerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "year_collections" WHERE year = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(2025, 1).
			WillReturnRows(ledgerRows(t, 2025))

		ledger, err := repo.FindByYear(context.Background(), 2025)

		assert.NoError(t, err)
		require.NotNil(t, ledger)
		assert.Equal(t, 2025, ledger.Year)
		assert.Len(t, ledger.MonthlyBreakdown, 12)
		assert.True(t, ledger.TotalAmount.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for a year with no payments", func(t *testing.T) {
		repo, mock, mockDB := newMockLedgerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "year_collections" WHERE year = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(2019, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		ledger, err := repo.FindByYear(context.Background(), 2019)

		assert.Nil(t, ledger)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLedgerRepository_ListYears(t *testing.T) {
	repo, mock, mockDB := newMockLedgerRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT "year" FROM "year_collections" ORDER BY year DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"year"}).AddRow(2026).AddRow(2025))

	years, err := repo.ListYears(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []int{2026, 2025}, years)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormLedgerRepository_RecordPayment(t *testing.T) {
	t.Run("locks the row and writes slot and total together", func(t *testing.T) {
		repo, mock, mockDB := newMockLedgerRepository(t)
		defer mockDB.Close()

		month := valueobject.NewMonth(2025, time.September)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "year_collections" WHERE year = \$1 ORDER BY .* FOR UPDATE`).
			WithArgs(2025, 1).
			WillReturnRows(ledgerRows(t, 2025))
		mock.ExpectExec(`UPDATE "year_collections" SET .* WHERE id = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.RecordPayment(context.Background(), month, valueobject.NewMoneyPKRFromInt(3000))

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the update fails", func(t *testing.T) {
		repo, mock, mockDB := newMockLedgerRepository(t)
		defer mockDB.Close()

		month := valueobject.NewMonth(2025, time.September)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "year_collections" WHERE year = \$1 ORDER BY .* FOR UPDATE`).
			WithArgs(2025, 1).
			WillReturnRows(ledgerRows(t, 2025))
		mock.ExpectExec(`UPDATE "year_collections" SET .* WHERE id = \$\d+`).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.RecordPayment(context.Background(), month, valueobject.NewMoneyPKRFromInt(3000))

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
