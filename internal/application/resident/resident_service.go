package resident

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/society/backend/internal/application/identity"
	"github.com/society/backend/internal/domain/resident"
	"github.com/society/backend/internal/domain/shared"
)

// ResidentService handles resident registration and profile management
type ResidentService struct {
	residents resident.Repository
	logger    *zap.Logger
	now       func() time.Time
}

// NewResidentService creates a new ResidentService
func NewResidentService(residents resident.Repository, logger *zap.Logger) *ResidentService {
	return &ResidentService{
		residents: residents,
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates a resident account. The anchor month for dues tracking is
// fixed to the registration month and never changes afterward.
func (s *ResidentService) Register(ctx context.Context, req RegisterRequest) (*ProfileResponse, error) {
	if _, err := s.residents.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if _, err := s.residents.FindByHouseNo(ctx, req.HouseNo); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "This house is already registered")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	hash, err := identity.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	r, err := resident.NewResident(resident.NewResidentInput{
		HouseNo:          req.HouseNo,
		Name:             req.Name,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		WhatsappNumber:   req.WhatsappNumber,
		PasswordHash:     hash,
		NIC:              req.NIC,
		Occupancy:        resident.OccupancyStatus(req.Occupancy),
		// self-registration always yields a billable resident; admin
		// accounts are provisioned directly, never through this endpoint
		Role:             resident.RoleResident,
		Floor:            req.Floor,
		SolarInstalled:   req.SolarInstalled,
		RegistrationDate: s.now(),
		TenantInfo:       req.TenantInfo,
		CarRegistrations: req.CarNumbers,
		BikeRegistration: req.BikeNumbers,
		SSGCID:           req.SSGCID,
		KEID:             req.KEID,
		KWSBID:           req.KWSBID,
		HouseHelp:        req.HouseHelp,
		Driver:           req.Driver,
	})
	if err != nil {
		return nil, err
	}

	if err := s.residents.Save(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("Resident registered",
		zap.String("resident_id", r.ID.String()),
		zap.String("house_no", r.HouseNo),
		zap.String("anchor_month", r.AnchorMonth.String()))

	resp := ToProfileResponse(r)
	return &resp, nil
}

// GetProfile returns the full profile for a resident
func (s *ResidentService) GetProfile(ctx context.Context, id uuid.UUID) (*ProfileResponse, error) {
	r, err := s.residents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProfileResponse(r)
	return &resp, nil
}

// UpdateProfile applies the provided profile fields. Billing identity
// (anchor month, payment entries, role) is not touchable here.
func (s *ResidentService) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*ProfileResponse, error) {
	r, err := s.residents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyProfileUpdate(ctx, r, req)
}

// UpdateUser applies profile changes on behalf of an administrator.
// Administrator accounts are not editable through this path.
func (s *ResidentService) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*ProfileResponse, error) {
	r, err := s.residents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.IsAdmin() {
		return nil, shared.NewDomainError("FORBIDDEN", "Cannot update admin user")
	}
	return s.applyProfileUpdate(ctx, r, req)
}

func (s *ResidentService) applyProfileUpdate(ctx context.Context, r *resident.Resident, req UpdateProfileRequest) (*ProfileResponse, error) {
	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
		}
		r.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		r.PhoneNumber = *req.PhoneNumber
	}
	if req.WhatsappNumber != nil {
		if *req.WhatsappNumber == "" {
			return nil, shared.NewDomainError("INVALID_WHATSAPP", "WhatsApp number cannot be empty")
		}
		r.WhatsappNumber = *req.WhatsappNumber
	}
	if req.Occupancy != nil {
		status := resident.OccupancyStatus(*req.Occupancy)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_OCCUPANCY", "Occupancy status is not valid")
		}
		r.Occupancy = status
	}
	if req.Floor != nil {
		if *req.Floor == "" {
			return nil, shared.NewDomainError("INVALID_FLOOR", "Floor cannot be empty")
		}
		r.Floor = *req.Floor
	}
	if req.SolarInstalled != nil {
		r.SolarInstalled = *req.SolarInstalled
	}
	if req.TenantInfo != nil {
		r.TenantInfo = *req.TenantInfo
	}
	if req.CarNumbers != nil {
		r.CarRegistrations = resident.StringList(*req.CarNumbers).Compact()
	}
	if req.BikeNumbers != nil {
		r.BikeRegistration = resident.StringList(*req.BikeNumbers).Compact()
	}
	if req.SSGCID != nil {
		r.SSGCID = *req.SSGCID
	}
	if req.KEID != nil {
		r.KEID = *req.KEID
	}
	if req.KWSBID != nil {
		r.KWSBID = *req.KWSBID
	}
	if req.HouseHelp != nil {
		r.HouseHelp = resident.HouseHelpEntries(*req.HouseHelp).Compact()
	}
	if req.Driver != nil {
		if req.Driver.IsEmpty() {
			r.Driver = nil
		} else {
			d := *req.Driver
			r.Driver = &d
		}
	}

	r.Touch()
	r.IncrementVersion()
	if err := s.residents.Update(ctx, r); err != nil {
		return nil, err
	}

	resp := ToProfileResponse(r)
	return &resp, nil
}

// List returns residents (non-admin accounts) for admin views
func (s *ResidentService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ListItemResponse], error) {
	page, err := s.residents.FindAllByRole(ctx, resident.RoleResident, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ListItemResponse, 0, len(page.Items))
	for _, r := range page.Items {
		items = append(items, ToListItemResponse(r))
	}
	out := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &out, nil
}

// Delete removes a resident account entirely. Administrator accounts
// cannot be deleted.
func (s *ResidentService) Delete(ctx context.Context, id uuid.UUID) error {
	r, err := s.residents.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if r.IsAdmin() {
		return shared.NewDomainError("FORBIDDEN", "Cannot delete admin user")
	}
	if err := s.residents.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Resident deleted", zap.String("resident_id", id.String()))
	return nil
}
