package handler

import (
	"github.com/gin-gonic/gin"

	appresident "github.com/society/backend/internal/application/resident"
)

// UserHandler serves a resident's own profile
type UserHandler struct {
	BaseHandler
	residentService *appresident.ResidentService
}

// NewUserHandler creates a new user handler
func NewUserHandler(residentService *appresident.ResidentService) *UserHandler {
	return &UserHandler{residentService: residentService}
}

// RegisterRoutes registers profile routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("/profile", h.GetProfile)
		users.PUT("/profile", h.UpdateProfile)
	}
}

// GetProfile returns the caller's profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	residentID, err := h.getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.residentService.GetProfile(c.Request.Context(), residentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// UpdateProfile updates the caller's mutable profile fields
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	residentID, err := h.getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appresident.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, "Invalid request body", err)
		return
	}

	profile, err := h.residentService.UpdateProfile(c.Request.Context(), residentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}
