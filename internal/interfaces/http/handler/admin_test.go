package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/society/backend/internal/application/report"
	appresident "github.com/society/backend/internal/application/resident"
	appteam "github.com/society/backend/internal/application/team"
	"github.com/society/backend/internal/domain/billing"
	"github.com/society/backend/internal/domain/resident"
	"github.com/society/backend/internal/domain/shared/valueobject"
	"github.com/society/backend/internal/interfaces/http/middleware"
)

// MockLedgerRepository is a mock implementation of billing.LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindByYear(ctx context.Context, year int) (*billing.YearCollection, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.YearCollection), args.Error(1)
}

func (m *MockLedgerRepository) ListYears(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockLedgerRepository) RecordPayment(ctx context.Context, month valueobject.Month, amount valueobject.Money) error {
	args := m.Called(ctx, month, amount)
	return args.Error(0)
}

func setupAdminRouter(residents *MockResidentRepository, teamRepo *MockTeamRepository, ledger *MockLedgerRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	fee := valueobject.NewMoneyPKRFromInt(3000)
	residentService := appresident.NewResidentService(residents, zap.NewNop())
	teamService := appteam.NewTeamService(teamRepo, zap.NewNop())
	reportService := report.NewReportService(residents, ledger, fee, zap.NewNop())
	handler := NewAdminHandler(residentService, teamService, reportService)

	engine := gin.New()
	api := engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Set(middleware.JWTRoleKey, "admin")
	})
	handler.RegisterRoutes(api)
	return engine
}

func getAs(t *testing.T, engine *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAdminHandler_MonthDetails(t *testing.T) {
	t.Run("misspelled month name is a validation failure", func(t *testing.T) {
		engine := setupAdminRouter(new(MockResidentRepository), new(MockTeamRepository), new(MockLedgerRepository))

		w := getAs(t, engine, "/api/v1/admin/month-details/2025/Septembr")

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response["success"].(bool))
		errInfo := response["error"].(map[string]interface{})
		assert.Equal(t, "INVALID_INPUT", errInfo["code"])
	})

	t.Run("valid month splits residents into paid and unpaid", func(t *testing.T) {
		residents := new(MockResidentRepository)
		r, err := resident.NewResident(resident.NewResidentInput{
			HouseNo:          "D-7",
			Name:             "Bilal Ahmed",
			Email:            "bilal@example.com",
			WhatsappNumber:   "+923214445566",
			NIC:              "42301-4445566-3",
			Occupancy:        resident.OccupancyOwner,
			Floor:            "Ground",
			RegistrationDate: time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		residents.On("ListByRole", mock.Anything, resident.RoleResident).Return([]*resident.Resident{r}, nil)

		engine := setupAdminRouter(residents, new(MockTeamRepository), new(MockLedgerRepository))
		w := getAs(t, engine, "/api/v1/admin/month-details/2025/September")

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "September 2025", data["month"])
		unpaid := data["unpaid"].([]interface{})
		require.Len(t, unpaid, 1)
		assert.Equal(t, "D-7", unpaid[0].(map[string]interface{})["house_no"])
	})
}
