package services

import (
	"errors"
	"net/url"

	"github.com/google/uuid"

	"github.com/nattapon-dev/hotel-booking-api/internal/apperr"
	"github.com/nattapon-dev/hotel-booking-api/internal/models"
	"github.com/nattapon-dev/hotel-booking-api/internal/query"
	"github.com/nattapon-dev/hotel-booking-api/internal/repository"
)

// HotelStore is the slice of the hotel repository the services need.
type HotelStore interface {
	List(*query.ListOptions) ([]models.Hotel, int, error)
	GetByID(uuid.UUID) (*models.Hotel, error)
	Create(*models.Hotel) error
	Update(*models.Hotel) error
	DeleteCascade(uuid.UUID) error
}

// hotelListAllowed is the allow-list behind the public listing endpoint.
var hotelListAllowed = query.Allowed{
	Filter: []string{"name", "address", "tel"},
	Sort:   []string{"name", "address", "tel", "created_at"},
	Select: []string{"id", "name", "address", "tel", "description", "created_at"},
}

type HotelService struct {
	hotels HotelStore
}

func NewHotelService(hotels HotelStore) *HotelService {
	return &HotelService{hotels: hotels}
}

// HotelPage is one page of the hotel listing.
type HotelPage struct {
	Hotels     []models.Hotel
	Count      int
	Pagination query.Pagination
}

func (s *HotelService) List(values url.Values) (*HotelPage, error) {
	opts, err := query.Parse(values, hotelListAllowed)
	if err != nil {
		return nil, err
	}

	hotels, total, err := s.hotels.List(opts)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Cannot find Hotels", err)
	}

	return &HotelPage{
		Hotels:     hotels,
		Count:      len(hotels),
		Pagination: opts.Paginate(total),
	}, nil
}

func (s *HotelService) Get(id uuid.UUID) (*models.Hotel, error) {
	hotel, err := s.hotels.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Newf(apperr.NotFound, "No hotel with id %s", id)
		}
		return nil, apperr.Wrap(apperr.Internal, "Cannot find Hotel", err)
	}
	return hotel, nil
}

type CreateHotelInput struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Tel         string `json:"tel"`
	Description string `json:"description"`
}

func (s *HotelService) Create(in CreateHotelInput) (*models.Hotel, error) {
	if in.Name == "" || in.Address == "" {
		return nil, apperr.New(apperr.Validation, "Please provide a name and address")
	}

	hotel := &models.Hotel{
		ID:          uuid.New(),
		Name:        in.Name,
		Address:     in.Address,
		Tel:         in.Tel,
		Description: in.Description,
	}

	if err := s.hotels.Create(hotel); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Cannot create Hotel", err)
	}
	return hotel, nil
}

type UpdateHotelInput struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Tel         *string `json:"tel"`
	Description *string `json:"description"`
}

// Update applies a partial update, re-validating the merged record.
func (s *HotelService) Update(id uuid.UUID, in UpdateHotelInput) (*models.Hotel, error) {
	hotel, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		hotel.Name = *in.Name
	}
	if in.Address != nil {
		hotel.Address = *in.Address
	}
	if in.Tel != nil {
		hotel.Tel = *in.Tel
	}
	if in.Description != nil {
		hotel.Description = *in.Description
	}

	if hotel.Name == "" || hotel.Address == "" {
		return nil, apperr.New(apperr.Validation, "Please provide a name and address")
	}

	if err := s.hotels.Update(hotel); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Newf(apperr.NotFound, "No hotel with id %s", id)
		}
		return nil, apperr.Wrap(apperr.Internal, "Cannot update Hotel", err)
	}
	return hotel, nil
}

// Delete removes the hotel and every booking referencing it, bookings
// first.
func (s *HotelService) Delete(id uuid.UUID) error {
	if err := s.hotels.DeleteCascade(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.Newf(apperr.NotFound, "No hotel with id %s", id)
		}
		return apperr.Wrap(apperr.Internal, "Cannot delete Hotel", err)
	}
	return nil
}
