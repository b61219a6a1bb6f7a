package team

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for team members
type Repository interface {
	Create(ctx context.Context, m *Member) error
	FindByID(ctx context.Context, id uuid.UUID) (*Member, error)
	FindByEmail(ctx context.Context, email string) (*Member, error)
	FindAll(ctx context.Context) ([]*Member, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
