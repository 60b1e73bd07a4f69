package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nattapon-dev/hotel-booking-api/internal/apperr"
	"github.com/nattapon-dev/hotel-booking-api/internal/middleware"
	"github.com/nattapon-dev/hotel-booking-api/internal/services"
	"github.com/nattapon-dev/hotel-booking-api/internal/utils"
)

type BookingHandler struct {
	bookings *services.BookingService
}

func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// parseDate accepts the wire date format, date-only or full RFC 3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// scopedHotelID returns the hotel id when the request came through the
// nested /hotels/{hotelId}/bookings route.
func scopedHotelID(r *http.Request) (*uuid.UUID, error) {
	raw := chi.URLParam(r, "hotelId")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "Invalid hotel id")
	}
	return &id, nil
}

// ---------------------- LIST ----------------------

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		utils.JSONError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	hotelID, err := scopedHotelID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}

	bookings, err := h.bookings.List(claims, hotelID)
	if err != nil {
		utils.Error(w, err)
		return
	}

	count := len(bookings)
	utils.JSON(w, http.StatusOK, utils.Envelope{
		Success: true,
		Count:   &count,
		Data:    bookings,
	})
}

// ---------------------- GET ONE ----------------------

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.Error(w, apperr.New(apperr.Validation, "Invalid booking id"))
		return
	}

	booking, err := h.bookings.Get(id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.OK(w, http.StatusOK, booking)
}

// ---------------------- CREATE ----------------------

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		utils.JSONError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var body struct {
		StartDate string     `json:"startDate"`
		Nights    int        `json:"nights"`
		HotelID   *uuid.UUID `json:"hotel"`
	}
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}

	// nested route wins over a hotel id in the body
	hotelID, err := scopedHotelID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if hotelID == nil {
		hotelID = body.HotelID
	}
	if hotelID == nil {
		utils.Error(w, apperr.New(apperr.Validation, "Please provide a hotel id"))
		return
	}

	start, err := parseDate(body.StartDate)
	if err != nil {
		utils.Error(w, apperr.New(apperr.Validation, "Please add a start date"))
		return
	}

	booking, err := h.bookings.Create(claims, services.CreateBookingInput{
		HotelID:   *hotelID,
		StartDate: start,
		Nights:    body.Nights,
	})
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.OK(w, http.StatusOK, booking)
}

// ---------------------- UPDATE ----------------------

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		utils.JSONError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.Error(w, apperr.New(apperr.Validation, "Invalid booking id"))
		return
	}

	var body struct {
		StartDate *string    `json:"startDate"`
		Nights    *int       `json:"nights"`
		HotelID   *uuid.UUID `json:"hotel"`
	}
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}

	in := services.UpdateBookingInput{Nights: body.Nights, HotelID: body.HotelID}
	if body.StartDate != nil {
		start, err := parseDate(*body.StartDate)
		if err != nil {
			utils.Error(w, apperr.New(apperr.Validation, "Please add a valid start date"))
			return
		}
		in.StartDate = &start
	}

	booking, err := h.bookings.Update(claims, id, in)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.OK(w, http.StatusOK, booking)
}

// ---------------------- DELETE ----------------------

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		utils.JSONError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.Error(w, apperr.New(apperr.Validation, "Invalid booking id"))
		return
	}

	if err := h.bookings.Delete(claims, id); err != nil {
		utils.Error(w, err)
		return
	}

	utils.OK(w, http.StatusOK, struct{}{})
}
