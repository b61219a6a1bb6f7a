package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/society/backend/internal/domain/resident"
	"github.com/society/backend/internal/domain/shared"
)

// newMockResidentRepository creates a GormResidentRepository with a mocked SQL connection
func newMockResidentRepository(t *testing.T) (*GormResidentRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormResidentRepository(gormDB), mock, mockDB
}

func residentRows(id uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "version", "house_no", "name", "email", "whatsapp_number",
		"password_hash", "nic", "occupancy", "role", "floor",
		"registration_date", "anchor_month", "payment_entries",
	}).AddRow(
		id, 1, "A-12", "Ayesha Khan", "ayesha@example.com", "+923001234567",
		"$2a$10$hash", "42101-1234567-1", "standalone owner", "resident", "Ground",
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "June 2025",
		[]byte(`[{"month":"June 2025","status":"Paid","paid_date":"2025-06-15T00:00:00Z","amount":"3000"}]`),
	)
}

func TestGormResidentRepository_FindByID(t *testing.T) {
	t.Run("finds existing resident", func(t *testing.T) {
		repo, mock, mockDB := newMockResidentRepository(t)
		defer mockDB.Close()

		residentID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "residents" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(residentID, 1).
			WillReturnRows(residentRows(residentID))

		res, err := repo.FindByID(context.Background(), residentID)

		assert.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, residentID, res.ID)
		assert.Equal(t, "A-12", res.HouseNo)
		assert.Equal(t, "June 2025", res.AnchorMonth.String())
		require.Len(t, res.PaymentEntries, 1)
		assert.True(t, res.PaymentEntries[0].IsPaid())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing resident", func(t *testing.T) {
		repo, mock, mockDB := newMockResidentRepository(t)
		defer mockDB.Close()

		residentID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "residents" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(residentID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		res, err := repo.FindByID(context.Background(), residentID)

		assert.Nil(t, res)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormResidentRepository_FindByEmail(t *testing.T) {
	t.Run("matches case-insensitively", func(t *testing.T) {
		repo, mock, mockDB := newMockResidentRepository(t)
		defer mockDB.Close()

		residentID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "residents" WHERE lower\(email\) = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ayesha@example.com", 1).
			WillReturnRows(residentRows(residentID))

		res, err := repo.FindByEmail(context.Background(), "Ayesha@Example.com")

		assert.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, "ayesha@example.com", res.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects empty email without querying", func(t *testing.T) {
		repo, mock, mockDB := newMockResidentRepository(t)
		defer mockDB.Close()

		res, err := repo.FindByEmail(context.Background(), "")

		assert.Nil(t, res)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormResidentRepository_UpdateWithVersion(t *testing.T) {
	makeResident := func(t *testing.T) *resident.Resident {
		t.Helper()
		res, err := resident.NewResident(resident.NewResidentInput{
			HouseNo:          "A-12",
			Name:             "Ayesha Khan",
			Email:            "ayesha@example.com",
			WhatsappNumber:   "+923001234567",
			PasswordHash:     "$2a$10$hash",
			NIC:              "42101-1234567-1",
			Occupancy:        resident.OccupancyOwner,
			Floor:            "Ground",
			RegistrationDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		return res
	}

	t.Run("updates when version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockResidentRepository(t)
		defer mockDB.Close()

		res := makeResident(t)

		mock.ExpectExec(`UPDATE "residents" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateWithVersion(context.Background(), res, 1)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports conflict when no row matches the version", func(t *testing.T) {
		repo, mock, mockDB := newMockResidentRepository(t)
		defer mockDB.Close()

		res := makeResident(t)

		mock.ExpectExec(`UPDATE "residents" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateWithVersion(context.Background(), res, 1)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormResidentRepository_Count(t *testing.T) {
	repo, mock, mockDB := newMockResidentRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "residents" WHERE role = \$1`).
		WithArgs(resident.RoleResident).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.Count(context.Background(), resident.RoleResident)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormResidentRepository_Delete(t *testing.T) {
	t.Run("returns not found when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockResidentRepository(t)
		defer mockDB.Close()

		residentID := uuid.New()

		mock.ExpectExec(`DELETE FROM "residents" WHERE id = \$1`).
			WithArgs(residentID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), residentID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
