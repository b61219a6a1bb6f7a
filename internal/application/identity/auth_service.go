package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/society/backend/internal/domain/resident"
	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/domain/team"
	"github.com/society/backend/internal/infrastructure/auth"
)

// RoleTeam is the claim value for collector accounts. Residents and admins
// carry their resident.Role value instead.
const RoleTeam = "team"

// AuthService authenticates residents and team members. Both account kinds
// share one login endpoint; residents are checked first, then team members.
type AuthService struct {
	residents  resident.Repository
	team       team.Repository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	residents resident.Repository,
	teamRepo team.Repository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		residents:  residents,
		team:       teamRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login authenticates by email and password and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if r, err := s.residents.FindByEmail(ctx, input.Email); err == nil {
		return s.loginResident(r, input.Password)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	m, err := s.team.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown email", zap.String("email", input.Email))
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}
	return s.loginTeamMember(m, input.Password)
}

func (s *AuthService) loginResident(r *resident.Resident, password string) (*LoginResult, error) {
	if bcrypt.CompareHashAndPassword([]byte(r.PasswordHash), []byte(password)) != nil {
		s.logger.Warn("Invalid password attempt", zap.String("email", r.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: r.ID,
		Name:   r.Name,
		Role:   string(r.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("Resident logged in",
		zap.String("user_id", r.ID.String()),
		zap.String("role", string(r.Role)))

	return &LoginResult{
		UserID: r.ID.String(),
		Name:   r.Name,
		Email:  r.Email,
		Role:   string(r.Role),
		Tokens: tokens,
	}, nil
}

func (s *AuthService) loginTeamMember(m *team.Member, password string) (*LoginResult, error) {
	if bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) != nil {
		s.logger.Warn("Invalid password attempt", zap.String("email", m.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: m.ID,
		Name:   m.Name,
		Role:   RoleTeam,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("Team member logged in", zap.String("user_id", m.ID.String()))

	return &LoginResult{
		UserID: m.ID.String(),
		Name:   m.Name,
		Email:  m.Email,
		Role:   RoleTeam,
		Tokens: tokens,
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}

	if blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID); err == nil && blacklisted {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token has been revoked")
	}
	if invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime()); err == nil && invalidated {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Session has been revoked")
	}

	name, err := s.lookupName(ctx, claims)
	if err != nil {
		return nil, err
	}

	pair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, name)
	if err != nil {
		if errors.Is(err, auth.ErrMaxRefreshExceeded) {
			return nil, shared.NewDomainError("INVALID_TOKEN", "Session expired, please log in again")
		}
		return nil, shared.NewDomainError("INVALID_TOKEN", "Invalid or expired refresh token")
	}
	return pair, nil
}

func (s *AuthService) lookupName(ctx context.Context, claims *auth.Claims) (string, error) {
	id, err := claims.GetUserUUID()
	if err != nil {
		return "", shared.NewDomainError("INVALID_TOKEN", "Invalid token claims")
	}
	if claims.Role == RoleTeam {
		m, err := s.team.FindByID(ctx, id)
		if err != nil {
			return "", shared.NewDomainError("INVALID_TOKEN", "Account no longer exists")
		}
		return m.Name, nil
	}
	r, err := s.residents.FindByID(ctx, id)
	if err != nil {
		return "", shared.NewDomainError("INVALID_TOKEN", "Account no longer exists")
	}
	return r.Name, nil
}

// Logout revokes the presented access token, and optionally every session
// the user holds
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	claims, err := s.jwtService.ValidateAccessToken(input.AccessToken)
	if err != nil {
		// nothing to revoke for an invalid token
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to blacklist token on logout",
			zap.String("user_id", claims.UserID),
			zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}

	if input.AllDevices {
		ttl := s.jwtService.GetRefreshTokenExpiration()
		if err := s.blacklist.AddUserTokensToBlacklist(ctx, claims.UserID, ttl); err != nil {
			s.logger.Error("Failed to revoke all sessions",
				zap.String("user_id", claims.UserID),
				zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
		}
	}

	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyUser confirms an access token maps to an existing account, used by
// the auth middleware to reject tokens for deleted users when required
func (s *AuthService) VerifyUser(ctx context.Context, claims *auth.Claims) error {
	id, err := claims.GetUserUUID()
	if err != nil {
		return shared.NewDomainError("INVALID_TOKEN", "Invalid token claims")
	}
	if claims.Role == RoleTeam {
		_, err = s.team.FindByID(ctx, id)
	} else {
		_, err = s.residents.FindByID(ctx, id)
	}
	if err != nil {
		return shared.NewDomainError("INVALID_TOKEN", "Account no longer exists")
	}
	return nil
}

// ParseUserID converts the string user ID from claims into a UUID
func ParseUserID(userID string) (uuid.UUID, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, shared.NewDomainError("INVALID_TOKEN", "Invalid token claims")
	}
	return id, nil
}
