package resident

import (
	"context"

	"github.com/google/uuid"

	"github.com/society/backend/internal/domain/shared"
)

// Repository defines persistence operations for residents
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Resident, error)
	FindByEmail(ctx context.Context, email string) (*Resident, error)
	FindByHouseNo(ctx context.Context, houseNo string) (*Resident, error)
	// FindAllByRole lists residents with the given role ordered by house number
	FindAllByRole(ctx context.Context, role Role, filter shared.Filter) (*shared.Paginated[*Resident], error)
	// ListByRole returns every resident with the given role, unpaginated,
	// ordered by house number. Report queries fold over the full set.
	ListByRole(ctx context.Context, role Role) ([]*Resident, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*Resident], error)
	Save(ctx context.Context, r *Resident) error
	Update(ctx context.Context, r *Resident) error
	// UpdateWithVersion persists the aggregate only if the stored version
	// still matches expectedVersion. Returns ErrConcurrencyConflict when the
	// row was modified in between.
	UpdateWithVersion(ctx context.Context, r *Resident, expectedVersion int) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, role Role) (int64, error)
}
