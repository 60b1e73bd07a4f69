package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/nattapon-dev/hotel-booking-api/internal/config"
	"github.com/nattapon-dev/hotel-booking-api/internal/mailer"
	"github.com/nattapon-dev/hotel-booking-api/internal/middleware"
	"github.com/nattapon-dev/hotel-booking-api/internal/models"
	"github.com/nattapon-dev/hotel-booking-api/internal/query"
	"github.com/nattapon-dev/hotel-booking-api/internal/repository"
	"github.com/nattapon-dev/hotel-booking-api/internal/services"
)

type memHotelStore struct {
	hotels map[uuid.UUID]*models.Hotel
}

func newMemHotelStore() *memHotelStore {
	return &memHotelStore{hotels: map[uuid.UUID]*models.Hotel{}}
}

func (s *memHotelStore) List(*query.ListOptions) ([]models.Hotel, int, error) {
	out := []models.Hotel{}
	for _, h := range s.hotels {
		out = append(out, *h)
	}
	return out, len(out), nil
}

func (s *memHotelStore) GetByID(id uuid.UUID) (*models.Hotel, error) {
	h, ok := s.hotels[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *h
	return &cp, nil
}

func (s *memHotelStore) Create(h *models.Hotel) error {
	cp := *h
	s.hotels[h.ID] = &cp
	return nil
}

func (s *memHotelStore) Update(h *models.Hotel) error {
	if _, ok := s.hotels[h.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *h
	s.hotels[h.ID] = &cp
	return nil
}

func (s *memHotelStore) DeleteCascade(id uuid.UUID) error {
	if _, ok := s.hotels[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.hotels, id)
	return nil
}

type memBookingStore struct {
	bookings map[uuid.UUID]*models.Booking
}

func newMemBookingStore() *memBookingStore {
	return &memBookingStore{bookings: map[uuid.UUID]*models.Booking{}}
}

func (s *memBookingStore) ListAll() ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range s.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (s *memBookingStore) ListByUser(userID uuid.UUID) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *memBookingStore) ListByHotel(hotelID uuid.UUID) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range s.bookings {
		if b.HotelID == hotelID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *memBookingStore) GetByID(id uuid.UUID) (*models.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *memBookingStore) CountByUser(userID uuid.UUID) (int, error) {
	n := 0
	for _, b := range s.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *memBookingStore) Create(b *models.Booking) error {
	b.CreatedAt = time.Now()
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *memBookingStore) Update(b *models.Booking) error {
	if _, ok := s.bookings[b.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *memBookingStore) Delete(id uuid.UUID) error {
	if _, ok := s.bookings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.bookings, id)
	return nil
}

func bookingRouter() (*chi.Mux, *memHotelStore, *memBookingStore) {
	cfg := &config.Config{
		JWTSecret:    "test-secret",
		JWTExpire:    time.Hour,
		CookieExpire: time.Hour,
	}

	users := newMemUserStore()
	hotels := newMemHotelStore()
	bookings := newMemBookingStore()
	dispatcher := mailer.NewDispatcher(mailer.Noop{}, zap.NewNop())

	authSvc := services.NewAuthService(users, dispatcher, cfg)
	bookingSvc := services.NewBookingService(bookings, hotels, dispatcher)

	ah := NewAuthHandler(authSvc, cfg)
	bh := NewBookingHandler(bookingSvc)
	authMW := middleware.NewAuthMiddleware(cfg.JWTSecret)

	r := chi.NewRouter()
	r.Post("/api/v1/auth/register", ah.Register)
	r.Route("/api/v1/hotels/{hotelId}/bookings", func(r chi.Router) {
		r.Use(authMW.RequireAuth)
		r.Get("/", bh.List)
		r.Post("/", bh.Create)
	})
	r.Route("/api/v1/bookings", func(r chi.Router) {
		r.Use(authMW.RequireAuth)
		r.Get("/", bh.List)
		r.Post("/", bh.Create)
		r.Get("/{id}", bh.Get)
		r.Put("/{id}", bh.Update)
		r.Delete("/{id}", bh.Delete)
	})

	return r, hotels, bookings
}

type bookingResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		ID        uuid.UUID `json:"id"`
		StartDate time.Time `json:"startDate"`
		Nights    int       `json:"nights"`
		User      uuid.UUID `json:"user"`
		Hotel     struct {
			ID      uuid.UUID `json:"id"`
			Name    string    `json:"name"`
			Address string    `json:"address"`
			Tel     string    `json:"tel"`
		} `json:"hotel"`
		CreatedAt time.Time `json:"createdAt"`
	} `json:"data"`
}

func registerFor(t *testing.T, r http.Handler, email string) (string, uuid.UUID) {
	t.Helper()
	rr := doJSON(r, "POST", "/api/v1/auth/register",
		fmt.Sprintf(`{"name":"Bob","telephone":"0811111111","email":%q,"password":"secret123"}`, email), "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp tokenResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Token, resp.Data.ID
}

func seedHotel(hotels *memHotelStore) *models.Hotel {
	h := &models.Hotel{
		ID:      uuid.New(),
		Name:    "Riverside Inn",
		Address: "1 Quay St",
		Tel:     "021234567",
	}
	hotels.Create(h)
	return h
}

func TestCreateBookingNestedRoute(t *testing.T) {
	r, hotels, store := bookingRouter()
	hotel := seedHotel(hotels)
	token, userID := registerFor(t, r, "bob@x.com")

	rr := doJSON(r, "POST", "/api/v1/hotels/"+hotel.ID.String()+"/bookings",
		`{"startDate":"2026-01-10","nights":2}`, token)

	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp bookingResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Data.Nights)
	assert.Equal(t, userID, resp.Data.User)
	assert.Equal(t, hotel.ID, resp.Data.Hotel.ID)
	assert.Equal(t, "Riverside Inn", resp.Data.Hotel.Name)
	assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), resp.Data.StartDate)
	assert.False(t, resp.Data.CreatedAt.IsZero())

	body := rr.Body.String()
	assert.Contains(t, body, `"startDate"`)
	assert.Contains(t, body, `"createdAt"`)
	assert.NotContains(t, body, `"start_date"`)
	assert.NotContains(t, body, `"hotel_id"`)

	stored, err := store.GetByID(resp.Data.ID)
	assert.NoError(t, err)
	assert.Equal(t, hotel.ID, stored.HotelID)
}

func TestCreateBookingFlatRoute(t *testing.T) {
	r, hotels, _ := bookingRouter()
	hotel := seedHotel(hotels)
	token, _ := registerFor(t, r, "carol@x.com")

	rr := doJSON(r, "POST", "/api/v1/bookings",
		fmt.Sprintf(`{"startDate":"2026-02-01","nights":1,"hotel":%q}`, hotel.ID), token)

	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp bookingResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, hotel.ID, resp.Data.Hotel.ID)
}

func TestCreateBookingMissingHotel(t *testing.T) {
	r, _, _ := bookingRouter()
	token, _ := registerFor(t, r, "dave@x.com")

	rr := doJSON(r, "POST", "/api/v1/bookings",
		`{"startDate":"2026-02-01","nights":1}`, token)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "hotel id")
}

func TestUpdateBookingWireFields(t *testing.T) {
	r, hotels, store := bookingRouter()
	hotel := seedHotel(hotels)
	token, _ := registerFor(t, r, "erin@x.com")

	create := doJSON(r, "POST", "/api/v1/hotels/"+hotel.ID.String()+"/bookings",
		`{"startDate":"2026-01-10","nights":2}`, token)
	assert.Equal(t, http.StatusOK, create.Code)

	var created bookingResponse
	assert.NoError(t, json.Unmarshal(create.Body.Bytes(), &created))

	rr := doJSON(r, "PUT", "/api/v1/bookings/"+created.Data.ID.String(),
		`{"startDate":"2026-01-12","nights":3}`, token)
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var updated bookingResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, 3, updated.Data.Nights)
	assert.Equal(t, time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC), updated.Data.StartDate)

	stored, err := store.GetByID(created.Data.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3, stored.Nights)
}
