package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/society/backend/internal/domain/resident"
	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/infrastructure/persistence/models"
)

// GormResidentRepository implements resident.Repository using GORM
type GormResidentRepository struct {
	db *gorm.DB
}

// NewGormResidentRepository creates a new GormResidentRepository
func NewGormResidentRepository(db *gorm.DB) *GormResidentRepository {
	return &GormResidentRepository{db: db}
}

var _ resident.Repository = (*GormResidentRepository)(nil)

// FindByID finds a resident by ID
func (r *GormResidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*resident.Resident, error) {
	var model models.ResidentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByEmail finds a resident by email, case-insensitively
func (r *GormResidentRepository) FindByEmail(ctx context.Context, email string) (*resident.Resident, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.ResidentModel
	if err := r.db.WithContext(ctx).
		Where("lower(email) = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByHouseNo finds a resident by house number
func (r *GormResidentRepository) FindByHouseNo(ctx context.Context, houseNo string) (*resident.Resident, error) {
	if houseNo == "" {
		return nil, shared.NewDomainError("INVALID_HOUSE_NO", "House number cannot be empty")
	}
	var model models.ResidentModel
	if err := r.db.WithContext(ctx).
		Where("house_no = ?", houseNo).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAllByRole lists residents with the given role, paginated
func (r *GormResidentRepository) FindAllByRole(ctx context.Context, role resident.Role, filter shared.Filter) (*shared.Paginated[*resident.Resident], error) {
	query := r.db.WithContext(ctx).Model(&models.ResidentModel{}).Where("role = ?", role)
	return r.paginate(query, filter)
}

// ListByRole returns every resident with the given role ordered by house number
func (r *GormResidentRepository) ListByRole(ctx context.Context, role resident.Role) ([]*resident.Resident, error) {
	var residentModels []models.ResidentModel
	if err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("house_no ASC").
		Find(&residentModels).Error; err != nil {
		return nil, err
	}
	return toDomainResidents(residentModels)
}

// FindAll lists all residents matching the filter, paginated
func (r *GormResidentRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*resident.Resident], error) {
	query := r.db.WithContext(ctx).Model(&models.ResidentModel{})
	return r.paginate(query, filter)
}

// Save creates a new resident row
func (r *GormResidentRepository) Save(ctx context.Context, res *resident.Resident) error {
	model := models.ResidentModelFromDomain(res)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists the resident unconditionally
func (r *GormResidentRepository) Update(ctx context.Context, res *resident.Resident) error {
	model := models.ResidentModelFromDomain(res)
	return r.db.WithContext(ctx).Save(model).Error
}

// UpdateWithVersion persists the resident only if the stored version still
// matches expectedVersion. A zero-row update means another writer got there
// first and the caller must reload before retrying.
func (r *GormResidentRepository) UpdateWithVersion(ctx context.Context, res *resident.Resident, expectedVersion int) error {
	model := models.ResidentModelFromDomain(res)
	result := r.db.WithContext(ctx).
		Model(&models.ResidentModel{}).
		Where("id = ? AND version = ?", res.ID, expectedVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes a resident row
func (r *GormResidentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ResidentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts residents with the given role
func (r *GormResidentRepository) Count(ctx context.Context, role resident.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ResidentModel{}).
		Where("role = ?", role).
		Count(&count).Error
	return count, err
}

func (r *GormResidentRepository) paginate(query *gorm.DB, filter shared.Filter) (*shared.Paginated[*resident.Resident], error) {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR house_no ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, ResidentSortFields, "house_no")
	order := orderBy + " " + ValidateSortOrder(filter.OrderDir)

	var residentModels []models.ResidentModel
	if err := query.
		Order(order).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&residentModels).Error; err != nil {
		return nil, err
	}

	residents, err := toDomainResidents(residentModels)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(residents, total, filter.Page, filter.Limit())
	return &page, nil
}

func toDomainResidents(residentModels []models.ResidentModel) ([]*resident.Resident, error) {
	residents := make([]*resident.Resident, 0, len(residentModels))
	for i := range residentModels {
		res, err := residentModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		residents = append(residents, res)
	}
	return residents, nil
}
