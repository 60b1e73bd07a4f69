package handlers

import (
	"github.com/nattapon-dev/hotel-booking-api/internal/config"
	"github.com/nattapon-dev/hotel-booking-api/internal/services"
)

type Handler struct {
	Auth     *AuthHandler
	Hotels   *HotelHandler
	Bookings *BookingHandler
}

func NewHandler(auth *services.AuthService, hotels *services.HotelService, bookings *services.BookingService, cfg *config.Config) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(auth, cfg),
		Hotels:   NewHotelHandler(hotels),
		Bookings: NewBookingHandler(bookings),
	}
}
