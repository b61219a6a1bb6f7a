package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/society/backend/internal/application/identity"
	appresident "github.com/society/backend/internal/application/resident"
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

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-for-signing-access-tokens",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "society-backend-test",
		MaxRefreshCount:        3,
	})
}

func setupAuthRouter(residents *MockResidentRepository, teamRepo *MockTeamRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	authService := identity.NewAuthService(residents, teamRepo, testJWTService(), auth.NewInMemoryTokenBlacklist(), zap.NewNop())
	residentService := appresident.NewResidentService(residents, zap.NewNop())
	handler := NewAuthHandler(authService, residentService)

	engine := gin.New()
	api := engine.Group("/api/v1")
	handler.RegisterRoutes(api)
	return engine
}

func registeredResident(t *testing.T, password string) *resident.Resident {
	t.Helper()
	hash, err := identity.HashPassword(password)
	require.NoError(t, err)
	r, err := resident.NewResident(resident.NewResidentInput{
		HouseNo:          "B-12",
		Name:             "Sana Khalid",
		Email:            "sana@example.com",
		WhatsappNumber:   "+923001234567",
		PasswordHash:     hash,
		NIC:              "42101-1234567-1",
		Occupancy:        resident.OccupancyOwner,
		Floor:            "First",
		RegistrationDate: time.Now(),
	})
	require.NoError(t, err)
	return r
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		residents := new(MockResidentRepository)
		teamRepo := new(MockTeamRepository)
		r := registeredResident(t, "correct-horse")
		residents.On("FindByEmail", mock.Anything, "sana@example.com").Return(r, nil)

		engine := setupAuthRouter(residents, teamRepo)
		w := postJSON(t, engine, "/api/v1/auth/login", gin.H{
			"email":    "sana@example.com",
			"password": "correct-horse",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response["success"].(bool))

		data := response["data"].(map[string]interface{})
		assert.Equal(t, "resident", data["role"])
		tokens := data["tokens"].(map[string]interface{})
		assert.NotEmpty(t, tokens["access_token"])
		assert.NotEmpty(t, tokens["refresh_token"])
		assert.Equal(t, "Bearer", tokens["token_type"])
	})

	t.Run("wrong password", func(t *testing.T) {
		residents := new(MockResidentRepository)
		teamRepo := new(MockTeamRepository)
		r := registeredResident(t, "correct-horse")
		residents.On("FindByEmail", mock.Anything, "sana@example.com").Return(r, nil)

		engine := setupAuthRouter(residents, teamRepo)
		w := postJSON(t, engine, "/api/v1/auth/login", gin.H{
			"email":    "sana@example.com",
			"password": "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response["success"].(bool))
		errInfo := response["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_CREDENTIALS", errInfo["code"])
	})

	t.Run("missing fields", func(t *testing.T) {
		engine := setupAuthRouter(new(MockResidentRepository), new(MockTeamRepository))
		w := postJSON(t, engine, "/api/v1/auth/login", gin.H{"email": "sana@example.com"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("new resident", func(t *testing.T) {
		residents := new(MockResidentRepository)
		residents.On("FindByEmail", mock.Anything, "ali@example.com").Return(nil, shared.ErrNotFound)
		residents.On("FindByHouseNo", mock.Anything, "C-4").Return(nil, shared.ErrNotFound)
		residents.On("Save", mock.Anything, mock.AnythingOfType("*resident.Resident")).Return(nil)

		engine := setupAuthRouter(residents, new(MockTeamRepository))
		w := postJSON(t, engine, "/api/v1/auth/register", gin.H{
			"house_no":        "C-4",
			"name":            "Ali Raza",
			"email":           "ali@example.com",
			"password":        "s3cret-pass",
			"whatsapp_number": "+923331112223",
			"nic":             "42201-9998887-5",
			"occupancy":       "standalone owner",
			"floor":           "Ground",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "C-4", data["house_no"])
		assert.NotEmpty(t, data["payment_tracking_start_month"])
		residents.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		residents := new(MockResidentRepository)
		existing := registeredResident(t, "whatever")
		residents.On("FindByEmail", mock.Anything, "sana@example.com").Return(existing, nil)

		engine := setupAuthRouter(residents, new(MockTeamRepository))
		w := postJSON(t, engine, "/api/v1/auth/register", gin.H{
			"house_no":        "B-12",
			"name":            "Sana Khalid",
			"email":           "sana@example.com",
			"password":        "s3cret-pass",
			"whatsapp_number": "+923001234567",
			"nic":             "42101-1234567-1",
			"occupancy":       "standalone owner",
			"floor":           "First",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	residents := new(MockResidentRepository)
	teamRepo := new(MockTeamRepository)
	r := registeredResident(t, "correct-horse")
	residents.On("FindByEmail", mock.Anything, "sana@example.com").Return(r, nil)
	residents.On("FindByID", mock.Anything, r.ID).Return(r, nil)

	engine := setupAuthRouter(residents, teamRepo)

	loginW := postJSON(t, engine, "/api/v1/auth/login", gin.H{
		"email":    "sana@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, loginW.Code)

	var loginResponse map[string]interface{}
	require.NoError(t, json.Unmarshal(loginW.Body.Bytes(), &loginResponse))
	tokens := loginResponse["data"].(map[string]interface{})["tokens"].(map[string]interface{})
	refreshToken := tokens["refresh_token"].(string)

	w := postJSON(t, engine, "/api/v1/auth/refresh", gin.H{"refresh_token": refreshToken})
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])
	assert.NotEmpty(t, data["refresh_token"])
}
