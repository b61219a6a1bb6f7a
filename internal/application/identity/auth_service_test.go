package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/society/backend/internal/domain/resident"
	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/domain/team"
	"github.com/society/backend/internal/infrastructure/auth"
	"github.com/society/backend/internal/infrastructure/config"
)

// MockResidentRepository is a mock implementation of resident.Repository
type MockResidentRepository struct {
	mock.Mock
}

func (m *MockResidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*resident.Resident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resident.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindByEmail(ctx context.Context, email string) (*resident.Resident, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resident.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindByHouseNo(ctx context.Context, houseNo string) (*resident.Resident, error) {
	args := m.Called(ctx, houseNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resident.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindAllByRole(ctx context.Context, role resident.Role, filter shared.Filter) (*shared.Paginated[*resident.Resident], error) {
	args := m.Called(ctx, role, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*resident.Resident]), args.Error(1)
}

func (m *MockResidentRepository) ListByRole(ctx context.Context, role resident.Role) ([]*resident.Resident, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*resident.Resident), args.Error(1)
}

func (m *MockResidentRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*resident.Resident], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*resident.Resident]), args.Error(1)
}

func (m *MockResidentRepository) Save(ctx context.Context, r *resident.Resident) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockResidentRepository) Update(ctx context.Context, r *resident.Resident) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockResidentRepository) UpdateWithVersion(ctx context.Context, r *resident.Resident, expectedVersion int) error {
	args := m.Called(ctx, r, expectedVersion)
	return args.Error(0)
}

func (m *MockResidentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResidentRepository) Count(ctx context.Context, role resident.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

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

func testAuthService(residents *MockResidentRepository, teamRepo *MockTeamRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-for-signing-access-tokens",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "society-backend-test",
		MaxRefreshCount:        3,
	})
	return NewAuthService(residents, teamRepo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
}

func loginResident(t *testing.T, password string) *resident.Resident {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	r, err := resident.NewResident(resident.NewResidentInput{
		HouseNo:          "D-9",
		Name:             "Bilal Ahmed",
		Email:            "bilal@example.com",
		WhatsappNumber:   "+923215554443",
		PasswordHash:     hash,
		NIC:              "42401-5554443-7",
		Occupancy:        resident.OccupancyOwner,
		Floor:            "Ground",
		RegistrationDate: time.Now(),
	})
	require.NoError(t, err)
	return r
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("resident with valid credentials", func(t *testing.T) {
		residents := new(MockResidentRepository)
		teamRepo := new(MockTeamRepository)
		r := loginResident(t, "correct-horse")
		residents.On("FindByEmail", ctx, "bilal@example.com").Return(r, nil)

		result, err := testAuthService(residents, teamRepo).Login(ctx, LoginInput{
			Email:    "bilal@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.Equal(t, r.ID.String(), result.UserID)
		assert.Equal(t, "resident", result.Role)
		assert.NotEmpty(t, result.Tokens.AccessToken)
	})

	t.Run("resident with wrong password", func(t *testing.T) {
		residents := new(MockResidentRepository)
		teamRepo := new(MockTeamRepository)
		r := loginResident(t, "correct-horse")
		residents.On("FindByEmail", ctx, "bilal@example.com").Return(r, nil)

		_, err := testAuthService(residents, teamRepo).Login(ctx, LoginInput{
			Email:    "bilal@example.com",
			Password: "wrong",
		})
		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_CREDENTIALS", de.Code)
	})

	t.Run("falls back to team member", func(t *testing.T) {
		residents := new(MockResidentRepository)
		teamRepo := new(MockTeamRepository)
		residents.On("FindByEmail", ctx, "collector@example.com").Return(nil, shared.ErrNotFound)

		hash, err := HashPassword("collector-pass")
		require.NoError(t, err)
		member, err := team.NewMember("Collector One", "collector@example.com", "", hash)
		require.NoError(t, err)
		teamRepo.On("FindByEmail", ctx, "collector@example.com").Return(member, nil)

		result, err := testAuthService(residents, teamRepo).Login(ctx, LoginInput{
			Email:    "collector@example.com",
			Password: "collector-pass",
		})
		require.NoError(t, err)
		assert.Equal(t, RoleTeam, result.Role)
	})

	t.Run("unknown email", func(t *testing.T) {
		residents := new(MockResidentRepository)
		teamRepo := new(MockTeamRepository)
		residents.On("FindByEmail", ctx, "ghost@example.com").Return(nil, shared.ErrNotFound)
		teamRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, shared.ErrNotFound)

		_, err := testAuthService(residents, teamRepo).Login(ctx, LoginInput{
			Email:    "ghost@example.com",
			Password: "whatever",
		})
		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_CREDENTIALS", de.Code)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	residents := new(MockResidentRepository)
	teamRepo := new(MockTeamRepository)
	svc := testAuthService(residents, teamRepo)

	r := loginResident(t, "correct-horse")
	residents.On("FindByEmail", ctx, "bilal@example.com").Return(r, nil)
	residents.On("FindByID", ctx, r.ID).Return(r, nil)

	result, err := svc.Login(ctx, LoginInput{Email: "bilal@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	t.Run("valid refresh token yields new pair", func(t *testing.T) {
		pair, err := svc.Refresh(ctx, RefreshInput{RefreshToken: result.Tokens.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEqual(t, result.Tokens.RefreshToken, pair.RefreshToken)
	})

	t.Run("access token is rejected", func(t *testing.T) {
		_, err := svc.Refresh(ctx, RefreshInput{RefreshToken: result.Tokens.AccessToken})
		require.Error(t, err)
	})

	t.Run("refresh fails after logout of all devices", func(t *testing.T) {
		require.NoError(t, svc.Logout(ctx, LogoutInput{
			AccessToken: result.Tokens.AccessToken,
			AllDevices:  true,
		}))

		_, err := svc.Refresh(ctx, RefreshInput{RefreshToken: result.Tokens.RefreshToken})
		require.Error(t, err)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	residents := new(MockResidentRepository)
	teamRepo := new(MockTeamRepository)
	svc := testAuthService(residents, teamRepo)

	t.Run("invalid token is a no-op", func(t *testing.T) {
		assert.NoError(t, svc.Logout(ctx, LogoutInput{AccessToken: "garbage"}))
	})
}

func TestHashPassword(t *testing.T) {
	t.Run("rejects short passwords", func(t *testing.T) {
		_, err := HashPassword("short")
		assert.Error(t, err)
	})

	t.Run("produces a verifiable hash", func(t *testing.T) {
		hash, err := HashPassword("a-long-enough-password")
		require.NoError(t, err)
		assert.NotEqual(t, "a-long-enough-password", hash)
	})
}
