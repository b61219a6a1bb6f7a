package resident

import (
	"time"

	"github.com/society/backend/internal/domain/resident"
)

// RegisterRequest carries the data for registering a resident
type RegisterRequest struct {
	HouseNo        string                    `json:"house_no" binding:"required"`
	Name           string                    `json:"name" binding:"required"`
	Email          string                    `json:"email" binding:"required,email"`
	Password       string                    `json:"password" binding:"required,min=8"`
	PhoneNumber    string                    `json:"phone_number"`
	WhatsappNumber string                    `json:"whatsapp_number" binding:"required"`
	NIC            string                    `json:"nic" binding:"required"`
	Occupancy      string                    `json:"occupancy" binding:"required,oneof='standalone owner' tenant"`
	Floor          string                    `json:"floor" binding:"required"`
	SolarInstalled bool                      `json:"solar_installed"`
	TenantInfo     resident.TenantInfo       `json:"tenant_info"`
	CarNumbers     []string                  `json:"car_registration_numbers"`
	BikeNumbers    []string                  `json:"motorcycle_registration_numbers"`
	SSGCID         string                    `json:"ssgc_id"`
	KEID           string                    `json:"ke_id"`
	KWSBID         string                    `json:"kwsb_id"`
	HouseHelp      []resident.HouseHelpEntry `json:"house_help"`
	Driver         *resident.DriverInfo      `json:"driver"`
}

// UpdateProfileRequest carries the mutable profile fields. Anchor month,
// role, payment entries and registration date are never updatable here.
type UpdateProfileRequest struct {
	Name           *string                    `json:"name"`
	PhoneNumber    *string                    `json:"phone_number"`
	WhatsappNumber *string                    `json:"whatsapp_number"`
	Occupancy      *string                    `json:"occupancy" binding:"omitempty,oneof='standalone owner' tenant"`
	Floor          *string                    `json:"floor"`
	SolarInstalled *bool                      `json:"solar_installed"`
	TenantInfo     *resident.TenantInfo       `json:"tenant_info"`
	CarNumbers     *[]string                  `json:"car_registration_numbers"`
	BikeNumbers    *[]string                  `json:"motorcycle_registration_numbers"`
	SSGCID         *string                    `json:"ssgc_id"`
	KEID           *string                    `json:"ke_id"`
	KWSBID         *string                    `json:"kwsb_id"`
	HouseHelp      *[]resident.HouseHelpEntry `json:"house_help"`
	Driver         *resident.DriverInfo       `json:"driver"`
}

// ProfileResponse is the full resident profile
type ProfileResponse struct {
	ID             string                    `json:"id"`
	HouseNo        string                    `json:"house_no"`
	Name           string                    `json:"name"`
	Email          string                    `json:"email"`
	PhoneNumber    string                    `json:"phone_number,omitempty"`
	WhatsappNumber string                    `json:"whatsapp_number"`
	NIC            string                    `json:"nic"`
	Occupancy      string                    `json:"occupancy"`
	Role           string                    `json:"role"`
	Floor          string                    `json:"floor"`
	SolarInstalled bool                      `json:"solar_installed"`
	Registered     time.Time                 `json:"registration_date"`
	AnchorMonth    string                    `json:"payment_tracking_start_month"`
	TenantInfo     resident.TenantInfo       `json:"tenant_info"`
	CarNumbers     []string                  `json:"car_registration_numbers"`
	BikeNumbers    []string                  `json:"motorcycle_registration_numbers"`
	SSGCID         string                    `json:"ssgc_id,omitempty"`
	KEID           string                    `json:"ke_id,omitempty"`
	KWSBID         string                    `json:"kwsb_id,omitempty"`
	HouseHelp      []resident.HouseHelpEntry `json:"house_help"`
	Driver         *resident.DriverInfo      `json:"driver,omitempty"`
}

// ListItemResponse is the compact listing row for admin views
type ListItemResponse struct {
	ID          string `json:"id"`
	HouseNo     string `json:"house_no"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	WhatsappNo  string `json:"whatsapp_number"`
	Occupancy   string `json:"occupancy"`
	Floor       string `json:"floor"`
	AnchorMonth string `json:"payment_tracking_start_month"`
}

// ToProfileResponse maps a resident aggregate to its profile view
func ToProfileResponse(r *resident.Resident) ProfileResponse {
	return ProfileResponse{
		ID:             r.ID.String(),
		HouseNo:        r.HouseNo,
		Name:           r.Name,
		Email:          r.Email,
		PhoneNumber:    r.PhoneNumber,
		WhatsappNumber: r.WhatsappNumber,
		NIC:            r.NIC,
		Occupancy:      string(r.Occupancy),
		Role:           string(r.Role),
		Floor:          r.Floor,
		SolarInstalled: r.SolarInstalled,
		Registered:     r.RegistrationDate,
		AnchorMonth:    r.AnchorMonth.String(),
		TenantInfo:     r.TenantInfo,
		CarNumbers:     r.CarRegistrations,
		BikeNumbers:    r.BikeRegistration,
		SSGCID:         r.SSGCID,
		KEID:           r.KEID,
		KWSBID:         r.KWSBID,
		HouseHelp:      r.HouseHelp,
		Driver:         r.Driver,
	}
}

// ToListItemResponse maps a resident to a listing row
func ToListItemResponse(r *resident.Resident) ListItemResponse {
	return ListItemResponse{
		ID:          r.ID.String(),
		HouseNo:     r.HouseNo,
		Name:        r.Name,
		Email:       r.Email,
		WhatsappNo:  r.WhatsappNumber,
		Occupancy:   string(r.Occupancy),
		Floor:       r.Floor,
		AnchorMonth: r.AnchorMonth.String(),
	}
}
