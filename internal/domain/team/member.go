package team

import (
	"github.com/society/backend/internal/domain/shared"
)

// Member is a society staff account (collector) that can mark payments but
// has no house or dues of its own
type Member struct {
	shared.BaseEntity
	Name         string `json:"name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	PasswordHash string `json:"-"`
}

// NewMember creates a team member account
func NewMember(name, email, phoneNumber, passwordHash string) (*Member, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	return &Member{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Email:        email,
		PhoneNumber:  phoneNumber,
		PasswordHash: passwordHash,
	}, nil
}
