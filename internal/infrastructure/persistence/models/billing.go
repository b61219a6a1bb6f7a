package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/society/backend/internal/domain/billing"
)

// YearCollectionModel is the persistence model for the yearly collection
// ledger. One row per calendar year; the twelve month slots live in a JSONB
// column.
type YearCollectionModel struct {
	AggregateModel
	Year             int                      `gorm:"not null;uniqueIndex"`
	TotalAmount      decimal.Decimal          `gorm:"type:decimal(18,2);not null;default:0"`
	MonthlyBreakdown billing.MonthlyBreakdown `gorm:"type:jsonb;not null"`
	LastUpdated      time.Time                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (YearCollectionModel) TableName() string {
	return "year_collections"
}

// ToDomain converts the persistence model to a domain YearCollection aggregate.
func (m *YearCollectionModel) ToDomain() *billing.YearCollection {
	return &billing.YearCollection{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Year:              m.Year,
		TotalAmount:       m.TotalAmount,
		MonthlyBreakdown:  m.MonthlyBreakdown,
		LastUpdated:       m.LastUpdated,
	}
}

// FromDomain populates the persistence model from a domain YearCollection aggregate.
func (m *YearCollectionModel) FromDomain(c *billing.YearCollection) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Year = c.Year
	m.TotalAmount = c.TotalAmount
	m.MonthlyBreakdown = c.MonthlyBreakdown
	m.LastUpdated = c.LastUpdated
}

// YearCollectionModelFromDomain creates a new persistence model from a domain
// YearCollection aggregate.
func YearCollectionModelFromDomain(c *billing.YearCollection) *YearCollectionModel {
	m := &YearCollectionModel{}
	m.FromDomain(c)
	return m
}
