package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/society/backend/internal/application/identity"
	appresident "github.com/society/backend/internal/application/resident"
	"github.com/society/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService     *identity.AuthService
	residentService *appresident.ResidentService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService, residentService *appresident.ResidentService) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		residentService: residentService,
	}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.POST("/register", h.Register)
	}
}

// LogoutRequest optionally asks to revoke every session of the caller
type LogoutRequest struct {
	AllDevices bool `json:"all_devices"`
}

// Login authenticates a resident or team member by email and password
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, "Invalid request body", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identity.RefreshInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, "Invalid request body", err)
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tokens)
}

// Logout revokes the caller's current token, or every token when
// all_devices is set
func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, "Invalid request body", err)
			return
		}
	}

	authHeader := c.GetHeader(middleware.AuthHeaderKey)
	token := strings.TrimPrefix(authHeader, middleware.BearerPrefix)

	err := h.authService.Logout(c.Request.Context(), identity.LogoutInput{
		AccessToken: token,
		AllDevices:  req.AllDevices,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Logged out successfully"})
}

// Register creates a new resident account
func (h *AuthHandler) Register(c *gin.Context) {
	var req appresident.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, "Invalid request body", err)
		return
	}

	profile, err := h.residentService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, profile)
}
