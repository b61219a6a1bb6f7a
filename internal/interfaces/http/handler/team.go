package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/society/backend/internal/application/billing"
	"github.com/society/backend/internal/application/report"
	"github.com/society/backend/internal/interfaces/http/middleware"
)

// TeamHandler serves the collector-facing endpoints
type TeamHandler struct {
	BaseHandler
	paymentService *billing.PaymentService
	reportService  *report.ReportService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(paymentService *billing.PaymentService, reportService *report.ReportService) *TeamHandler {
	return &TeamHandler{
		paymentService: paymentService,
		reportService:  reportService,
	}
}

// RegisterRoutes registers collector routes, gated to team members and admins
func (h *TeamHandler) RegisterRoutes(rg *gin.RouterGroup) {
	team := rg.Group("/team")
	team.Use(middleware.RequireCollector())
	{
		team.GET("/users", h.ListUsers)
		team.POST("/mark-paid", h.MarkPaid)
	}
}

// ListUsers returns every resident with their outstanding dues,
// most overdue first
func (h *TeamHandler) ListUsers(c *gin.Context) {
	residents, err := h.reportService.UsersWithDues(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, residents)
}

// MarkPaid records one month's maintenance payment for a resident
func (h *TeamHandler) MarkPaid(c *gin.Context) {
	var req billing.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, "Invalid request body", err)
		return
	}

	result, err := h.paymentService.MarkPaid(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
