package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/society/backend/internal/domain/notification"
	"github.com/society/backend/internal/domain/shared/valueobject"
)

// NotificationModel is the persistence model for the Notification entity
type NotificationModel struct {
	BaseModel
	ResidentID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Title      string            `gorm:"type:varchar(200);not null"`
	Message    string            `gorm:"type:text;not null"`
	Type       notification.Type `gorm:"type:varchar(30);not null"`
	Month      string            `gorm:"type:varchar(20)"`
	Amount     decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	PaidDate   *time.Time        `gorm:"type:timestamptz"`
	Read       bool              `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification entity.
func (m *NotificationModel) ToDomain() *notification.Notification {
	var month valueobject.Month
	if m.Month != "" {
		// the column is only ever written from Month.String(); a parse
		// failure degrades to the zero Month rather than failing the read
		month, _ = valueobject.ParseMonth(m.Month)
	}
	return &notification.Notification{
		BaseEntity: m.BaseModel.ToDomain(),
		ResidentID: m.ResidentID,
		Title:      m.Title,
		Message:    m.Message,
		Type:       m.Type,
		Month:      month,
		Amount:     m.Amount,
		PaidDate:   m.PaidDate,
		Read:       m.Read,
	}
}

// FromDomain populates the persistence model from a domain Notification entity.
func (m *NotificationModel) FromDomain(n *notification.Notification) {
	m.FromDomainBaseEntity(n.BaseEntity)
	m.ResidentID = n.ResidentID
	m.Title = n.Title
	m.Message = n.Message
	m.Type = n.Type
	m.Month = n.Month.String()
	m.Amount = n.Amount
	m.PaidDate = n.PaidDate
	m.Read = n.Read
}

// NotificationModelFromDomain creates a new persistence model from a domain
// Notification entity.
func NotificationModelFromDomain(n *notification.Notification) *NotificationModel {
	m := &NotificationModel{}
	m.FromDomain(n)
	return m
}
