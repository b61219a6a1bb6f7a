package models

import (
	"github.com/society/backend/internal/domain/team"
)

// TeamMemberModel is the persistence model for the collection team Member entity
type TeamMemberModel struct {
	BaseModel
	Name         string `gorm:"type:varchar(200);not null"`
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	PhoneNumber  string `gorm:"type:varchar(50)"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (TeamMemberModel) TableName() string {
	return "team_members"
}

// ToDomain converts the persistence model to a domain Member entity.
func (m *TeamMemberModel) ToDomain() *team.Member {
	return &team.Member{
		BaseEntity:   m.BaseModel.ToDomain(),
		Name:         m.Name,
		Email:        m.Email,
		PhoneNumber:  m.PhoneNumber,
		PasswordHash: m.PasswordHash,
	}
}

// FromDomain populates the persistence model from a domain Member entity.
func (m *TeamMemberModel) FromDomain(member *team.Member) {
	m.FromDomainBaseEntity(member.BaseEntity)
	m.Name = member.Name
	m.Email = member.Email
	m.PhoneNumber = member.PhoneNumber
	m.PasswordHash = member.PasswordHash
}

// TeamMemberModelFromDomain creates a new persistence model from a domain Member entity.
func TeamMemberModelFromDomain(member *team.Member) *TeamMemberModel {
	m := &TeamMemberModel{}
	m.FromDomain(member)
	return m
}
