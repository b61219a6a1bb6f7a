package team

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/society/backend/internal/application/identity"
	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/domain/team"
)

// CreateMemberRequest carries the data for adding a collector account
type CreateMemberRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password" binding:"required,min=8"`
}

// MemberResponse is a team member view without credentials
type MemberResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TeamService manages collector accounts
type TeamService struct {
	members team.Repository
	logger  *zap.Logger
}

// NewTeamService creates a new TeamService
func NewTeamService(members team.Repository, logger *zap.Logger) *TeamService {
	return &TeamService{members: members, logger: logger}
}

// Create adds a new team member account
func (s *TeamService) Create(ctx context.Context, req CreateMemberRequest) (*MemberResponse, error) {
	if _, err := s.members.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A team member with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	hash, err := identity.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	m, err := team.NewMember(req.Name, req.Email, req.PhoneNumber, hash)
	if err != nil {
		return nil, err
	}

	if err := s.members.Create(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("Team member created",
		zap.String("member_id", m.ID.String()),
		zap.String("email", m.Email))

	resp := toMemberResponse(m)
	return &resp, nil
}

// List returns all team member accounts
func (s *TeamService) List(ctx context.Context) ([]MemberResponse, error) {
	members, err := s.members.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	return out, nil
}

// Delete removes a team member account
func (s *TeamService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.members.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.members.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Team member deleted", zap.String("member_id", id.String()))
	return nil
}

func toMemberResponse(m *team.Member) MemberResponse {
	return MemberResponse{
		ID:          m.ID.String(),
		Name:        m.Name,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		CreatedAt:   m.CreatedAt,
	}
}
