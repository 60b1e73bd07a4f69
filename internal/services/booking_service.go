package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nattapon-dev/hotel-booking-api/internal/apperr"
	"github.com/nattapon-dev/hotel-booking-api/internal/mailer"
	"github.com/nattapon-dev/hotel-booking-api/internal/models"
	"github.com/nattapon-dev/hotel-booking-api/internal/repository"
	"github.com/nattapon-dev/hotel-booking-api/internal/utils"
)

// BookingStore is the slice of the booking repository the service needs.
type BookingStore interface {
	ListAll() ([]models.Booking, error)
	ListByUser(uuid.UUID) ([]models.Booking, error)
	ListByHotel(uuid.UUID) ([]models.Booking, error)
	GetByID(uuid.UUID) (*models.Booking, error)
	CountByUser(uuid.UUID) (int, error)
	Create(*models.Booking) error
	Update(*models.Booking) error
	Delete(uuid.UUID) error
}

type BookingService struct {
	bookings BookingStore
	hotels   HotelStore
	mail     *mailer.Dispatcher
}

func NewBookingService(bookings BookingStore, hotels HotelStore, mail *mailer.Dispatcher) *BookingService {
	return &BookingService{bookings: bookings, hotels: hotels, mail: mail}
}

const checkInFormat = "Mon, 02 Jan 2006"

func nightsLabel(n int) string {
	if n == 1 {
		return "1 night"
	}
	return fmt.Sprintf("%d nights", n)
}

// List scopes results by role: a regular user sees only their own
// bookings, an admin sees everything, or one hotel's bookings when
// scoped.
func (s *BookingService) List(claims *utils.SessionClaims, hotelID *uuid.UUID) ([]models.Booking, error) {
	var (
		bookings []models.Booking
		err      error
	)
	switch {
	case !claims.Admin():
		bookings, err = s.bookings.ListByUser(claims.SubjectID())
	case hotelID != nil:
		bookings, err = s.bookings.ListByHotel(*hotelID)
	default:
		bookings, err = s.bookings.ListAll()
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Cannot find Bookings", err)
	}
	return bookings, nil
}

func (s *BookingService) Get(id uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Newf(apperr.NotFound, "No booking with id %s", id)
		}
		return nil, apperr.Wrap(apperr.Internal, "Cannot find Booking", err)
	}
	return booking, nil
}

type CreateBookingInput struct {
	HotelID   uuid.UUID
	StartDate time.Time
	Nights    int
}

// Create checks, in order: hotel existence, the quota of 3 concurrent
// bookings for non-admins, and the nights bound, then persists and sends
// a best-effort confirmation. The quota check is a read before the write
// and is not atomic with it: two concurrent creates can both pass the
// check and leave the user one over quota.
func (s *BookingService) Create(claims *utils.SessionClaims, in CreateBookingInput) (*models.Booking, error) {
	hotel, err := s.hotels.GetByID(in.HotelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Newf(apperr.NotFound, "No hotel with id %s", in.HotelID)
		}
		return nil, apperr.Wrap(apperr.Internal, "Cannot create Booking", err)
	}

	userID := claims.SubjectID()
	if !claims.Admin() {
		count, err := s.bookings.CountByUser(userID)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "Cannot create Booking", err)
		}
		if count >= models.MaxBookingsPerUser {
			return nil, apperr.Newf(apperr.QuotaExceeded,
				"User %s already has %d bookings", userID, models.MaxBookingsPerUser)
		}
	}

	if err := validateNights(in.Nights); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:        uuid.New(),
		StartDate: in.StartDate,
		Nights:    in.Nights,
		UserID:    userID,
		HotelID:   in.HotelID,
	}

	if err := s.bookings.Create(booking); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Cannot create Booking", err)
	}

	booking.Hotel = &models.HotelSummary{ID: hotel.ID, Name: hotel.Name, Address: hotel.Address, Tel: hotel.Tel}

	s.mail.Dispatch(claims.Email, "Booking confirmed: "+hotel.Name, fmt.Sprintf(
		"Your booking at %s (%s) is confirmed.\nCheck-in: %s\nStay: %s",
		hotel.Name, hotel.Address, in.StartDate.Format(checkInFormat), nightsLabel(in.Nights),
	))

	return booking, nil
}

func validateNights(nights int) error {
	if nights > models.MaxNights {
		return apperr.Newf(apperr.Validation, "Booking up to %d nights only", models.MaxNights)
	}
	if nights < 1 {
		return apperr.New(apperr.Validation, "Nights must be at least 1")
	}
	return nil
}

// ownershipGate is the check repeated across update and delete: the
// caller owns the booking or is an admin.
func ownershipGate(claims *utils.SessionClaims, booking *models.Booking) error {
	if booking.UserID != claims.SubjectID() && !claims.Admin() {
		return apperr.Newf(apperr.Unauthorized, "User %s not authorized", claims.SubjectID())
	}
	return nil
}

type UpdateBookingInput struct {
	StartDate *time.Time
	Nights    *int
	HotelID   *uuid.UUID
}

// Update applies a partial update behind the ownership gate, re-validating
// the merged record, and sends a best-effort notice with the refreshed
// hotel details.
func (s *BookingService) Update(claims *utils.SessionClaims, id uuid.UUID, in UpdateBookingInput) (*models.Booking, error) {
	booking, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := ownershipGate(claims, booking); err != nil {
		return nil, err
	}

	if in.StartDate != nil {
		booking.StartDate = *in.StartDate
	}
	if in.Nights != nil {
		booking.Nights = *in.Nights
	}
	if in.HotelID != nil {
		booking.HotelID = *in.HotelID
	}

	if err := validateNights(booking.Nights); err != nil {
		return nil, err
	}

	hotel, err := s.hotels.GetByID(booking.HotelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Newf(apperr.NotFound, "No hotel with id %s", booking.HotelID)
		}
		return nil, apperr.Wrap(apperr.Internal, "Cannot update Booking", err)
	}

	if err := s.bookings.Update(booking); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Cannot update Booking", err)
	}

	booking.Hotel = &models.HotelSummary{ID: hotel.ID, Name: hotel.Name, Address: hotel.Address, Tel: hotel.Tel}

	s.mail.Dispatch(claims.Email, "Booking updated: "+hotel.Name, fmt.Sprintf(
		"Your booking at %s has been updated.\nCheck-in: %s\nStay: %s",
		hotel.Name, booking.StartDate.Format(checkInFormat), nightsLabel(booking.Nights),
	))

	return booking, nil
}

// Delete removes a booking behind the ownership gate. The cancellation
// notice goes out before the row is removed so it reflects live data.
func (s *BookingService) Delete(claims *utils.SessionClaims, id uuid.UUID) error {
	booking, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := ownershipGate(claims, booking); err != nil {
		return err
	}

	hotelName := "your hotel"
	if booking.Hotel != nil {
		hotelName = booking.Hotel.Name
	}
	s.mail.Dispatch(claims.Email, "Booking cancelled: "+hotelName, fmt.Sprintf(
		"Your booking at %s for %s has been cancelled.",
		hotelName, booking.StartDate.Format(checkInFormat),
	))

	if err := s.bookings.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.Newf(apperr.NotFound, "No booking with id %s", id)
		}
		return apperr.Wrap(apperr.Internal, "Cannot delete Booking", err)
	}
	return nil
}
