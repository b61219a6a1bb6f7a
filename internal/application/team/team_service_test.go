package team

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/domain/team"
)

// MockTeamRepository is a mock implementation of team.Repository
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(ctx context.Context, member *team.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockTeamRepository) FindByID(ctx context.Context, id uuid.UUID) (*team.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*team.Member), args.Error(1)
}

func (m *MockTeamRepository) FindByEmail(ctx context.Context, email string) (*team.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*team.Member), args.Error(1)
}

func (m *MockTeamRepository) FindAll(ctx context.Context) ([]*team.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*team.Member), args.Error(1)
}

func (m *MockTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateMember(t *testing.T) {
	ctx := context.Background()

	t.Run("creates member with hashed password", func(t *testing.T) {
		repo := new(MockTeamRepository)
		repo.On("FindByEmail", ctx, "collector@example.com").Return(nil, shared.ErrNotFound)
		repo.On("Create", ctx, mock.AnythingOfType("*team.Member")).Return(nil)

		resp, err := NewTeamService(repo, zap.NewNop()).Create(ctx, CreateMemberRequest{
			Name:     "Collector One",
			Email:    "collector@example.com",
			Password: "collector-password",
		})
		require.NoError(t, err)
		assert.Equal(t, "Collector One", resp.Name)

		created := repo.Calls[1].Arguments.Get(1).(*team.Member)
		assert.NotEqual(t, "collector-password", created.PasswordHash)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		repo := new(MockTeamRepository)
		existing, err := team.NewMember("Existing", "collector@example.com", "", "hash")
		require.NoError(t, err)
		repo.On("FindByEmail", ctx, "collector@example.com").Return(existing, nil)

		_, err = NewTeamService(repo, zap.NewNop()).Create(ctx, CreateMemberRequest{
			Name:     "Collector Two",
			Email:    "collector@example.com",
			Password: "collector-password",
		})
		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "ALREADY_EXISTS", de.Code)
	})
}

func TestDeleteMember(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown member", func(t *testing.T) {
		repo := new(MockTeamRepository)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		err := NewTeamService(repo, zap.NewNop()).Delete(ctx, id)
		require.ErrorIs(t, err, shared.ErrNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
