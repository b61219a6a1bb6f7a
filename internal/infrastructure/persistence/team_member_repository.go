package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/domain/team"
	"github.com/society/backend/internal/infrastructure/persistence/models"
)

// GormTeamMemberRepository implements team.Repository using GORM
type GormTeamMemberRepository struct {
	db *gorm.DB
}

// NewGormTeamMemberRepository creates a new GormTeamMemberRepository
func NewGormTeamMemberRepository(db *gorm.DB) *GormTeamMemberRepository {
	return &GormTeamMemberRepository{db: db}
}

var _ team.Repository = (*GormTeamMemberRepository)(nil)

// Create inserts a team member row
func (r *GormTeamMemberRepository) Create(ctx context.Context, m *team.Member) error {
	model := models.TeamMemberModelFromDomain(m)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a team member by ID
func (r *GormTeamMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*team.Member, error) {
	var model models.TeamMemberModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a team member by email, case-insensitively
func (r *GormTeamMemberRepository) FindByEmail(ctx context.Context, email string) (*team.Member, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.TeamMemberModel
	if err := r.db.WithContext(ctx).
		Where("lower(email) = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists every team member ordered by name
func (r *GormTeamMemberRepository) FindAll(ctx context.Context) ([]*team.Member, error) {
	var memberModels []models.TeamMemberModel
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&memberModels).Error; err != nil {
		return nil, err
	}

	members := make([]*team.Member, len(memberModels))
	for i := range memberModels {
		members[i] = memberModels[i].ToDomain()
	}
	return members, nil
}

// Delete removes a team member row
func (r *GormTeamMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TeamMemberModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
