package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/society/backend/internal/domain/billing"
	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/domain/shared/valueobject"
	"github.com/society/backend/internal/infrastructure/persistence/models"
)

// GormLedgerRepository implements billing.LedgerRepository using GORM
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

var _ billing.LedgerRepository = (*GormLedgerRepository)(nil)

// FindByYear finds the collection ledger for a calendar year
func (r *GormLedgerRepository) FindByYear(ctx context.Context, year int) (*billing.YearCollection, error) {
	var model models.YearCollectionModel
	if err := r.db.WithContext(ctx).First(&model, "year = ?", year).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListYears returns every year with a ledger row, newest first
func (r *GormLedgerRepository) ListYears(ctx context.Context) ([]int, error) {
	var years []int
	err := r.db.WithContext(ctx).
		Model(&models.YearCollectionModel{}).
		Order("year DESC").
		Pluck("year", &years).Error
	return years, err
}

// RecordPayment atomically adds one collected payment to the year's ledger.
// The ledger row is created on first use and held under a row lock while the
// month slot and yearly total are updated together.
func (r *GormLedgerRepository) RecordPayment(ctx context.Context, month valueobject.Month, amount valueobject.Money) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.YearCollectionModel
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&model, "year = ?", month.Year()).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			ledger, ferr := billing.NewYearCollection(month.Year())
			if ferr != nil {
				return ferr
			}
			// A concurrent first payment may create the row between our
			// lookup and insert; DoNothing plus re-select resolves the race.
			if cerr := tx.
				Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "year"}},
					DoNothing: true,
				}).
				Create(models.YearCollectionModelFromDomain(ledger)).Error; cerr != nil {
				return cerr
			}
			err = tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&model, "year = ?", month.Year()).Error
		}
		if err != nil {
			return err
		}

		ledger := model.ToDomain()
		if err := ledger.Record(month, amount, time.Now()); err != nil {
			return err
		}

		updated := models.YearCollectionModelFromDomain(ledger)
		return tx.Model(&models.YearCollectionModel{}).
			Where("id = ?", updated.ID).
			Updates(map[string]interface{}{
				"total_amount":      updated.TotalAmount,
				"monthly_breakdown": updated.MonthlyBreakdown,
				"last_updated":      updated.LastUpdated,
				"updated_at":        updated.UpdatedAt,
				"version":           updated.Version,
			}).Error
	})
}
