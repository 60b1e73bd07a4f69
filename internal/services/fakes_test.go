package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nattapon-dev/hotel-booking-api/internal/config"
	"github.com/nattapon-dev/hotel-booking-api/internal/mailer"
	"github.com/nattapon-dev/hotel-booking-api/internal/models"
	"github.com/nattapon-dev/hotel-booking-api/internal/query"
	"github.com/nattapon-dev/hotel-booking-api/internal/repository"
)

// ---------------- in-memory stores ----------------

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uuid.UUID]*models.User{}}
}

func (s *fakeUserStore) Create(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) GetByID(id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) UpdateRole(id uuid.UUID, role models.Role) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type fakeHotelStore struct {
	mu     sync.Mutex
	hotels map[uuid.UUID]*models.Hotel
	// cascade target, shared with the booking store in tests
	bookings *fakeBookingStore
}

func newFakeHotelStore() *fakeHotelStore {
	return &fakeHotelStore{hotels: map[uuid.UUID]*models.Hotel{}}
}

func (s *fakeHotelStore) List(opts *query.ListOptions) ([]models.Hotel, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]models.Hotel, 0, len(s.hotels))
	for _, h := range s.hotels {
		all = append(all, *h)
	}
	return all, len(all), nil
}

func (s *fakeHotelStore) GetByID(id uuid.UUID) (*models.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hotels[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *h
	return &cp, nil
}

func (s *fakeHotelStore) Create(h *models.Hotel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *h
	s.hotels[h.ID] = &cp
	return nil
}

func (s *fakeHotelStore) Update(h *models.Hotel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hotels[h.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *h
	s.hotels[h.ID] = &cp
	return nil
}

func (s *fakeHotelStore) DeleteCascade(id uuid.UUID) error {
	s.mu.Lock()
	if _, ok := s.hotels[id]; !ok {
		s.mu.Unlock()
		return repository.ErrNotFound
	}
	delete(s.hotels, id)
	s.mu.Unlock()

	if s.bookings != nil {
		s.bookings.deleteByHotel(id)
	}
	return nil
}

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*models.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: map[uuid.UUID]*models.Booking{}}
}

func (s *fakeBookingStore) ListAll() ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		all = append(all, *b)
	}
	return all, nil
}

func (s *fakeBookingStore) ListByUser(userID uuid.UUID) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeBookingStore) ListByHotel(hotelID uuid.UUID) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.HotelID == hotelID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeBookingStore) GetByID(id uuid.UUID) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *fakeBookingStore) CountByUser(userID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *fakeBookingStore) Create(b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *fakeBookingStore) Update(b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[b.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *fakeBookingStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.bookings, id)
	return nil
}

func (s *fakeBookingStore) deleteByHotel(hotelID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, b := range s.bookings {
		if b.HotelID == hotelID {
			delete(s.bookings, id)
		}
	}
}

// ---------------- notification recorder ----------------

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (n *recordingNotifier) Send(to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("smtp down")
	}
	n.sent = append(n.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func (n *recordingNotifier) last() sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return sentMail{}
	}
	return n.sent[len(n.sent)-1]
}

func testDispatcher(n mailer.Notifier) *mailer.Dispatcher {
	return mailer.NewDispatcher(n, zap.NewNop())
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		JWTExpire: time.Hour,
	}
}
