package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nattapon-dev/hotel-booking-api/internal/apperr"
	"github.com/nattapon-dev/hotel-booking-api/internal/services"
	"github.com/nattapon-dev/hotel-booking-api/internal/utils"
)

type HotelHandler struct {
	hotels *services.HotelService
}

func NewHotelHandler(hotels *services.HotelService) *HotelHandler {
	return &HotelHandler{hotels: hotels}
}

func hotelID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperr.New(apperr.Validation, "Invalid hotel id")
	}
	return id, nil
}

// ---------------------- LIST ----------------------

func (h *HotelHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.hotels.List(r.URL.Query())
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, utils.Envelope{
		Success:    true,
		Count:      &page.Count,
		Pagination: page.Pagination,
		Data:       page.Hotels,
	})
}

// ---------------------- GET ONE ----------------------

func (h *HotelHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := hotelID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}

	hotel, err := h.hotels.Get(id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.OK(w, http.StatusOK, hotel)
}

// ---------------------- CREATE (admin) ----------------------

func (h *HotelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateHotelInput
	if err := utils.DecodeJSON(w, r, &in); err != nil {
		return
	}

	hotel, err := h.hotels.Create(in)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.OK(w, http.StatusCreated, hotel)
}

// ---------------------- UPDATE (admin) ----------------------

func (h *HotelHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := hotelID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}

	var in services.UpdateHotelInput
	if err := utils.DecodeJSON(w, r, &in); err != nil {
		return
	}

	hotel, err := h.hotels.Update(id, in)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.OK(w, http.StatusOK, hotel)
}

// ---------------------- DELETE (admin) ----------------------

func (h *HotelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := hotelID(r)
	if err != nil {
		utils.Error(w, err)
		return
	}

	if err := h.hotels.Delete(id); err != nil {
		utils.Error(w, err)
		return
	}

	utils.OK(w, http.StatusOK, struct{}{})
}
