package services

import (
	"github.com/ZakariaBatty/fleetdesk/internal/apperr"
	"github.com/ZakariaBatty/fleetdesk/internal/models"
	"github.com/ZakariaBatty/fleetdesk/internal/policy"
	"github.com/ZakariaBatty/fleetdesk/internal/repo"
	"github.com/ZakariaBatty/fleetdesk/validation"
)

// LocationService covers agencies and hotels. Both are back-office
// reference data, hard-denied to drivers.
type LocationService struct {
	Locations *repo.LocationRepo
}

func NewLocationService(locations *repo.LocationRepo) *LocationService {
	return &LocationService{Locations: locations}
}

type AgencyInput struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	City          string `json:"city"`
}

type HotelInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

func (s *LocationService) ListAgencies(caller Caller) ([]models.Agency, error) {
	if !policy.CanAccessResource(caller.Role, policy.ResourceAgency) {
		return nil, apperr.Unauthorized("cannot view agencies")
	}
	agencies, err := s.Locations.ListAgencies()
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return agencies, nil
}

func (s *LocationService) GetAgency(id uint, caller Caller) (*models.Agency, error) {
	if !policy.CanAccessResource(caller.Role, policy.ResourceAgency) {
		return nil, apperr.Unauthorized("cannot view agencies")
	}
	agency, err := s.Locations.AgencyByID(id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if agency == nil {
		return nil, apperr.NotFound("agency")
	}
	return agency, nil
}

func (s *LocationService) CreateAgency(caller Caller, in AgencyInput) (*models.Agency, error) {
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceAgency, nil, policy.ActionCreate) {
		return nil, apperr.Unauthorized("cannot create agencies")
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	if in.Email != "" {
		validation.Email("email", in.Email, v)
	}
	if !v.Empty() {
		field, msg := v.First()
		return nil, apperr.Invalid(field, msg)
	}
	taken, err := s.Locations.AgencyNameExists(in.Name, 0)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if taken {
		return nil, apperr.Conflict("agency name already exists")
	}
	agency := &models.Agency{
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		City:          in.City,
	}
	if err := s.Locations.CreateAgency(agency); err != nil {
		return nil, apperr.Storage(err)
	}
	return agency, nil
}

func (s *LocationService) UpdateAgency(id uint, caller Caller, in AgencyInput) (*models.Agency, error) {
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceAgency, nil, policy.ActionUpdate) {
		return nil, apperr.Unauthorized("cannot update agencies")
	}
	agency, err := s.Locations.AgencyByID(id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if agency == nil {
		return nil, apperr.NotFound("agency")
	}
	if in.Name != "" && in.Name != agency.Name {
		taken, err := s.Locations.AgencyNameExists(in.Name, agency.ID)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		if taken {
			return nil, apperr.Conflict("agency name already exists")
		}
		agency.Name = in.Name
	}
	if in.Email != "" {
		v := validation.Violations{}
		validation.Email("email", in.Email, v)
		if !v.Empty() {
			field, msg := v.First()
			return nil, apperr.Invalid(field, msg)
		}
		agency.Email = in.Email
	}
	if in.ContactPerson != "" {
		agency.ContactPerson = in.ContactPerson
	}
	if in.Phone != "" {
		agency.Phone = in.Phone
	}
	if in.Address != "" {
		agency.Address = in.Address
	}
	if in.City != "" {
		agency.City = in.City
	}
	if err := s.Locations.SaveAgency(agency); err != nil {
		return nil, apperr.Storage(err)
	}
	return agency, nil
}

func (s *LocationService) DeleteAgency(id uint, caller Caller) error {
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceAgency, nil, policy.ActionDelete) {
		return apperr.Unauthorized("cannot delete agencies")
	}
	agency, err := s.Locations.AgencyByID(id)
	if err != nil {
		return apperr.Storage(err)
	}
	if agency == nil {
		return apperr.NotFound("agency")
	}
	if err := s.Locations.SoftDeleteAgency(id); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (s *LocationService) ListHotels(caller Caller) ([]models.Hotel, error) {
	if !policy.CanAccessResource(caller.Role, policy.ResourceHotel) {
		return nil, apperr.Unauthorized("cannot view hotels")
	}
	hotels, err := s.Locations.ListHotels()
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return hotels, nil
}

func (s *LocationService) GetHotel(id uint, caller Caller) (*models.Hotel, error) {
	if !policy.CanAccessResource(caller.Role, policy.ResourceHotel) {
		return nil, apperr.Unauthorized("cannot view hotels")
	}
	hotel, err := s.Locations.HotelByID(id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if hotel == nil {
		return nil, apperr.NotFound("hotel")
	}
	return hotel, nil
}

func (s *LocationService) CreateHotel(caller Caller, in HotelInput) (*models.Hotel, error) {
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceHotel, nil, policy.ActionCreate) {
		return nil, apperr.Unauthorized("cannot create hotels")
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	if in.Email != "" {
		validation.Email("email", in.Email, v)
	}
	if !v.Empty() {
		field, msg := v.First()
		return nil, apperr.Invalid(field, msg)
	}
	taken, err := s.Locations.HotelNameExists(in.Name, 0)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if taken {
		return nil, apperr.Conflict("hotel name already exists")
	}
	hotel := &models.Hotel{
		Name:    in.Name,
		Address: in.Address,
		City:    in.City,
		Phone:   in.Phone,
		Email:   in.Email,
	}
	if err := s.Locations.CreateHotel(hotel); err != nil {
		return nil, apperr.Storage(err)
	}
	return hotel, nil
}

func (s *LocationService) UpdateHotel(id uint, caller Caller, in HotelInput) (*models.Hotel, error) {
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceHotel, nil, policy.ActionUpdate) {
		return nil, apperr.Unauthorized("cannot update hotels")
	}
	hotel, err := s.Locations.HotelByID(id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if hotel == nil {
		return nil, apperr.NotFound("hotel")
	}
	if in.Name != "" && in.Name != hotel.Name {
		taken, err := s.Locations.HotelNameExists(in.Name, hotel.ID)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		if taken {
			return nil, apperr.Conflict("hotel name already exists")
		}
		hotel.Name = in.Name
	}
	if in.Email != "" {
		v := validation.Violations{}
		validation.Email("email", in.Email, v)
		if !v.Empty() {
			field, msg := v.First()
			return nil, apperr.Invalid(field, msg)
		}
		hotel.Email = in.Email
	}
	if in.Address != "" {
		hotel.Address = in.Address
	}
	if in.City != "" {
		hotel.City = in.City
	}
	if in.Phone != "" {
		hotel.Phone = in.Phone
	}
	if err := s.Locations.SaveHotel(hotel); err != nil {
		return nil, apperr.Storage(err)
	}
	return hotel, nil
}

func (s *LocationService) DeleteHotel(id uint, caller Caller) error {
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceHotel, nil, policy.ActionDelete) {
		return apperr.Unauthorized("cannot delete hotels")
	}
	hotel, err := s.Locations.HotelByID(id)
	if err != nil {
		return apperr.Storage(err)
	}
	if hotel == nil {
		return apperr.NotFound("hotel")
	}
	if err := s.Locations.SoftDeleteHotel(id); err != nil {
		return apperr.Storage(err)
	}
	return nil
}
