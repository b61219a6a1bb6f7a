package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/society/backend/internal/application/report"
	appresident "github.com/society/backend/internal/application/resident"
	appteam "github.com/society/backend/internal/application/team"
	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/domain/shared/valueobject"
	"github.com/society/backend/internal/interfaces/http/dto"
	"github.com/society/backend/internal/interfaces/http/middleware"
)

// AdminHandler serves the admin-only management and reporting endpoints
type AdminHandler struct {
	BaseHandler
	residentService *appresident.ResidentService
	teamService     *appteam.TeamService
	reportService   *report.ReportService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	residentService *appresident.ResidentService,
	teamService *appteam.TeamService,
	reportService *report.ReportService,
) *AdminHandler {
	return &AdminHandler{
		residentService: residentService,
		teamService:     teamService,
		reportService:   reportService,
	}
}

// RegisterRoutes registers admin routes, gated to the admin role
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/users", h.ListUsers)
		admin.PUT("/users/:id", h.UpdateUser)
		admin.DELETE("/users/:id", h.DeleteUser)

		admin.GET("/team-members", h.ListTeamMembers)
		admin.POST("/team-members", h.CreateTeamMember)
		admin.DELETE("/team-members/:id", h.DeleteTeamMember)

		admin.GET("/dashboard-stats", h.DashboardStats)
		admin.GET("/yearly-report/:year", h.YearlyReport)
		admin.GET("/available-years", h.AvailableYears)
		admin.GET("/users-with-dues", h.UsersWithDues)
		admin.GET("/dues-overview", h.DuesOverview)
		admin.GET("/month-details/:year/:month", h.MonthDetails)
		admin.GET("/collected-payments/:year", h.CollectedPayments)
	}
}

// ListUsers returns a paginated resident listing
func (h *AdminHandler) ListUsers(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, "Invalid query parameters", err)
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}

	page, err := h.residentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, &dto.Meta{
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

// UpdateUser updates a resident's profile on their behalf
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	residentID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req appresident.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, "Invalid request body", err)
		return
	}

	profile, err := h.residentService.UpdateUser(c.Request.Context(), residentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// DeleteUser removes a resident account
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	residentID, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.residentService.Delete(c.Request.Context(), residentID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Resident deleted"})
}

// ListTeamMembers returns every collector account
func (h *AdminHandler) ListTeamMembers(c *gin.Context) {
	members, err := h.teamService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, members)
}

// CreateTeamMember creates a collector account
func (h *AdminHandler) CreateTeamMember(c *gin.Context) {
	var req appteam.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, "Invalid request body", err)
		return
	}

	member, err := h.teamService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, member)
}

// DeleteTeamMember removes a collector account
func (h *AdminHandler) DeleteTeamMember(c *gin.Context) {
	memberID, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.teamService.Delete(c.Request.Context(), memberID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Team member deleted"})
}

// DashboardStats returns the society-wide summary for the admin home
func (h *AdminHandler) DashboardStats(c *gin.Context) {
	stats, err := h.reportService.DashboardStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// YearlyReport returns the collection ledger for one year
func (h *AdminHandler) YearlyReport(c *gin.Context) {
	var req dto.YearRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid year")
		return
	}

	result, err := h.reportService.YearlyReport(c.Request.Context(), req.Year)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// AvailableYears lists the years that have ledger entries
func (h *AdminHandler) AvailableYears(c *gin.Context) {
	years, err := h.reportService.AvailableYears(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"years": years})
}

// UsersWithDues returns every resident with outstanding dues
func (h *AdminHandler) UsersWithDues(c *gin.Context) {
	residents, err := h.reportService.UsersWithDues(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, residents)
}

// DuesOverview returns the complete dues standing across residents
func (h *AdminHandler) DuesOverview(c *gin.Context) {
	overview, err := h.reportService.DuesOverview(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, overview)
}

// MonthDetails splits residents into paid and unpaid for one month
func (h *AdminHandler) MonthDetails(c *gin.Context) {
	var req dto.MonthDetailsRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid year or month")
		return
	}

	month, err := valueobject.ParseMonth(fmt.Sprintf("%s %d", req.Month, req.Year))
	if err != nil {
		h.HandleError(c, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid month: %v", err)))
		return
	}

	details, err := h.reportService.MonthDetails(c.Request.Context(), month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, details)
}

// CollectedPayments lists every payment collected in a year
func (h *AdminHandler) CollectedPayments(c *gin.Context) {
	var req dto.YearRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid year")
		return
	}

	payments, err := h.reportService.CollectedPayments(c.Request.Context(), req.Year)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}

// bindID parses the :id path parameter
func (h *AdminHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}
