package models

import (
	"time"

	"github.com/society/backend/internal/domain/resident"
	"github.com/society/backend/internal/domain/shared/valueobject"
)

// ResidentModel is the persistence model for the Resident aggregate. The
// payment entries and household details are stored as JSONB columns; their
// domain types carry the Scanner/Valuer pair.
type ResidentModel struct {
	AggregateModel
	HouseNo          string                    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name             string                    `gorm:"type:varchar(200);not null"`
	Email            string                    `gorm:"type:varchar(200);not null;uniqueIndex"`
	PhoneNumber      string                    `gorm:"type:varchar(50)"`
	WhatsappNumber   string                    `gorm:"type:varchar(50);not null"`
	PasswordHash     string                    `gorm:"type:varchar(100);not null"`
	NIC              string                    `gorm:"type:varchar(50);not null"`
	Occupancy        resident.OccupancyStatus  `gorm:"type:varchar(30);not null;default:'standalone owner'"`
	Role             resident.Role             `gorm:"type:varchar(20);not null;default:'resident';index"`
	Floor            string                    `gorm:"type:varchar(50);not null"`
	SolarInstalled   bool                      `gorm:"not null;default:false"`
	RegistrationDate time.Time                 `gorm:"not null"`
	AnchorMonth      string                    `gorm:"type:varchar(20);not null"`
	TenantInfo       resident.TenantInfo       `gorm:"type:jsonb"`
	CarRegistrations resident.StringList       `gorm:"type:jsonb"`
	BikeRegistration resident.StringList       `gorm:"type:jsonb"`
	SSGCID           string                    `gorm:"type:varchar(50)"`
	KEID             string                    `gorm:"type:varchar(50)"`
	KWSBID           string                    `gorm:"type:varchar(50)"`
	HouseHelp        resident.HouseHelpEntries `gorm:"type:jsonb"`
	Driver           *resident.DriverInfo      `gorm:"type:jsonb"`
	PaymentEntries   resident.PaymentEntries   `gorm:"type:jsonb;not null;default:'[]'"`
}

// TableName returns the table name for GORM
func (ResidentModel) TableName() string {
	return "residents"
}

// ToDomain converts the persistence model to a domain Resident aggregate.
func (m *ResidentModel) ToDomain() (*resident.Resident, error) {
	anchor, err := valueobject.ParseMonth(m.AnchorMonth)
	if err != nil {
		return nil, err
	}
	return &resident.Resident{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		HouseNo:           m.HouseNo,
		Name:              m.Name,
		Email:             m.Email,
		PhoneNumber:       m.PhoneNumber,
		WhatsappNumber:    m.WhatsappNumber,
		PasswordHash:      m.PasswordHash,
		NIC:               m.NIC,
		Occupancy:         m.Occupancy,
		Role:              m.Role,
		Floor:             m.Floor,
		SolarInstalled:    m.SolarInstalled,
		RegistrationDate:  m.RegistrationDate,
		AnchorMonth:       anchor,
		TenantInfo:        m.TenantInfo,
		CarRegistrations:  m.CarRegistrations,
		BikeRegistration:  m.BikeRegistration,
		SSGCID:            m.SSGCID,
		KEID:              m.KEID,
		KWSBID:            m.KWSBID,
		HouseHelp:         m.HouseHelp,
		Driver:            m.Driver,
		PaymentEntries:    m.PaymentEntries,
	}, nil
}

// FromDomain populates the persistence model from a domain Resident aggregate.
func (m *ResidentModel) FromDomain(r *resident.Resident) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.HouseNo = r.HouseNo
	m.Name = r.Name
	m.Email = r.Email
	m.PhoneNumber = r.PhoneNumber
	m.WhatsappNumber = r.WhatsappNumber
	m.PasswordHash = r.PasswordHash
	m.NIC = r.NIC
	m.Occupancy = r.Occupancy
	m.Role = r.Role
	m.Floor = r.Floor
	m.SolarInstalled = r.SolarInstalled
	m.RegistrationDate = r.RegistrationDate
	m.AnchorMonth = r.AnchorMonth.String()
	m.TenantInfo = r.TenantInfo
	m.CarRegistrations = r.CarRegistrations
	m.BikeRegistration = r.BikeRegistration
	m.SSGCID = r.SSGCID
	m.KEID = r.KEID
	m.KWSBID = r.KWSBID
	m.HouseHelp = r.HouseHelp
	m.Driver = r.Driver
	m.PaymentEntries = r.PaymentEntries
}

// ResidentModelFromDomain creates a new persistence model from a domain Resident aggregate.
func ResidentModelFromDomain(r *resident.Resident) *ResidentModel {
	m := &ResidentModel{}
	m.FromDomain(r)
	return m
}
