package resident

import (
	"fmt"
	"time"

	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/domain/shared/valueobject"
)

// Role distinguishes billable residents from administrators
type Role string

const (
	RoleResident Role = "resident"
	RoleAdmin    Role = "admin"
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	return r == RoleResident || r == RoleAdmin
}

// Resident is the aggregate root for one registered household member-of-record.
// It embeds the append-only per-month payment list; the anchor month fixed at
// registration is the start of the resident's dues window and is never
// recomputed afterward.
type Resident struct {
	shared.BaseAggregateRoot
	HouseNo          string            `json:"house_no"`
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	PhoneNumber      string            `json:"phone_number,omitempty"`
	WhatsappNumber   string            `json:"whatsapp_number"`
	PasswordHash     string            `json:"-"`
	NIC              string            `json:"nic"`
	Occupancy        OccupancyStatus   `json:"occupancy"`
	Role             Role              `json:"role"`
	Floor            string            `json:"floor"`
	SolarInstalled   bool              `json:"solar_installed"`
	RegistrationDate time.Time         `json:"registration_date"`
	AnchorMonth      valueobject.Month `json:"payment_tracking_start_month"`
	TenantInfo       TenantInfo        `json:"tenant_info"`
	CarRegistrations StringList        `json:"car_registration_numbers"`
	BikeRegistration StringList        `json:"motorcycle_registration_numbers"`
	SSGCID           string            `json:"ssgc_id,omitempty"`
	KEID             string            `json:"ke_id,omitempty"`
	KWSBID           string            `json:"kwsb_id,omitempty"`
	HouseHelp        HouseHelpEntries  `json:"house_help"`
	Driver           *DriverInfo       `json:"driver,omitempty"`
	PaymentEntries   PaymentEntries    `json:"payment_status"`
}

// NewResidentInput carries the data needed to register a resident
type NewResidentInput struct {
	HouseNo          string
	Name             string
	Email            string
	PhoneNumber      string
	WhatsappNumber   string
	PasswordHash     string
	NIC              string
	Occupancy        OccupancyStatus
	Role             Role
	Floor            string
	SolarInstalled   bool
	RegistrationDate time.Time
	TenantInfo       TenantInfo
	CarRegistrations StringList
	BikeRegistration StringList
	SSGCID           string
	KEID             string
	KWSBID           string
	HouseHelp        HouseHelpEntries
	Driver           *DriverInfo
}

// NewResident registers a new resident. The anchor month is derived from the
// registration date exactly once, here.
func NewResident(in NewResidentInput) (*Resident, error) {
	if in.HouseNo == "" {
		return nil, shared.NewDomainError("INVALID_HOUSE_NO", "House number cannot be empty")
	}
	if in.Name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if in.Email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if in.WhatsappNumber == "" {
		return nil, shared.NewDomainError("INVALID_WHATSAPP", "WhatsApp number cannot be empty")
	}
	if in.NIC == "" {
		return nil, shared.NewDomainError("INVALID_NIC", "NIC cannot be empty")
	}
	if in.Floor == "" {
		return nil, shared.NewDomainError("INVALID_FLOOR", "Floor cannot be empty")
	}
	if !in.Occupancy.IsValid() {
		return nil, shared.NewDomainError("INVALID_OCCUPANCY", "Occupancy status is not valid")
	}
	role := in.Role
	if role == "" {
		role = RoleResident
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role is not valid")
	}
	registeredAt := in.RegistrationDate
	if registeredAt.IsZero() {
		registeredAt = time.Now()
	}

	var driver *DriverInfo
	if in.Driver != nil && !in.Driver.IsEmpty() {
		d := *in.Driver
		driver = &d
	}

	r := &Resident{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		HouseNo:           in.HouseNo,
		Name:              in.Name,
		Email:             in.Email,
		PhoneNumber:       in.PhoneNumber,
		WhatsappNumber:    in.WhatsappNumber,
		PasswordHash:      in.PasswordHash,
		NIC:               in.NIC,
		Occupancy:         in.Occupancy,
		Role:              role,
		Floor:             in.Floor,
		SolarInstalled:    in.SolarInstalled,
		RegistrationDate:  registeredAt,
		AnchorMonth:       valueobject.MonthOf(registeredAt),
		TenantInfo:        in.TenantInfo,
		CarRegistrations:  in.CarRegistrations.Compact(),
		BikeRegistration:  in.BikeRegistration.Compact(),
		SSGCID:            in.SSGCID,
		KEID:              in.KEID,
		KWSBID:            in.KWSBID,
		HouseHelp:         in.HouseHelp.Compact(),
		Driver:            driver,
		PaymentEntries:    PaymentEntries{},
	}

	r.AddDomainEvent(NewResidentRegisteredEvent(r))

	return r, nil
}

// IsAdmin reports whether the resident holds the administrative role.
// Administrators are not billable.
func (r *Resident) IsAdmin() bool {
	return r.Role == RoleAdmin
}

// MarkEntryPaid transitions the entry for the given month to Paid.
// NotPaid -> Paid is the only legal transition; marking an already-paid month
// fails with ALREADY_PAID and months before the anchor are rejected with
// INVALID_RANGE. A missing entry is appended as Paid.
func (r *Resident) MarkEntryPaid(month valueobject.Month, fee valueobject.Money, now time.Time) (*PaymentEntry, error) {
	if month.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Month cannot be empty")
	}
	if !r.AnchorMonth.IsZero() && month.Before(r.AnchorMonth) {
		return nil, shared.NewDomainError("INVALID_RANGE",
			fmt.Sprintf("Cannot mark payment for %s as resident registered in %s", month, r.AnchorMonth))
	}

	paidDate := now
	entry := r.PaymentEntries.EntryFor(month)
	if entry != nil {
		if entry.IsPaid() {
			return nil, shared.ErrAlreadyPaid
		}
		entry.Status = PaymentStatusPaid
		entry.PaidDate = &paidDate
		entry.Amount = fee.Amount()
	} else {
		r.PaymentEntries = append(r.PaymentEntries, PaymentEntry{
			Month:    month,
			Status:   PaymentStatusPaid,
			PaidDate: &paidDate,
			Amount:   fee.Amount(),
		})
		entry = &r.PaymentEntries[len(r.PaymentEntries)-1]
	}

	r.UpdatedAt = now
	r.IncrementVersion()
	r.AddDomainEvent(NewPaymentMarkedEvent(r, *entry))

	return entry, nil
}

// EnsureEntriesThrough lazily appends NotPaid entries for every month between
// the anchor (inclusive) and now (inclusive) that has no entry yet. Returns
// the number of entries added. Existing entries are never touched.
func (r *Resident) EnsureEntriesThrough(now valueobject.Month, fee valueobject.Money) int {
	if r.AnchorMonth.IsZero() {
		return 0
	}
	added := 0
	for m := r.AnchorMonth; !m.After(now); m = m.Next() {
		if r.PaymentEntries.EntryFor(m) == nil {
			r.PaymentEntries = append(r.PaymentEntries, PaymentEntry{
				Month:  m,
				Status: PaymentStatusNotPaid,
				Amount: fee.Amount(),
			})
			added++
		}
	}
	if added > 0 {
		r.Touch()
		r.IncrementVersion()
	}
	return added
}

// LastPaidDate returns the paid date of the most recent Paid entry, or nil
func (r *Resident) LastPaidDate() *time.Time {
	var last *time.Time
	for i := range r.PaymentEntries {
		e := &r.PaymentEntries[i]
		if e.IsPaid() && e.PaidDate != nil && (last == nil || e.PaidDate.After(*last)) {
			last = e.PaidDate
		}
	}
	return last
}
