package identity

import (
	"github.com/society/backend/internal/infrastructure/auth"
)

// LoginInput carries the credentials from the login endpoint
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult is the outcome of a successful login
type LoginResult struct {
	UserID string          `json:"user_id"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Role   string          `json:"role"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// RefreshInput carries a refresh token
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutInput identifies the session to revoke
type LogoutInput struct {
	AccessToken string
	AllDevices  bool
}
