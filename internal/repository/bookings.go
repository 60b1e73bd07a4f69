package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nattapon-dev/hotel-booking-api/internal/models"
)

type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// bookingRow carries the joined hotel summary columns alongside the
// booking itself.
type bookingRow struct {
	models.Booking
	HotelName    string `db:"hotel_name"`
	HotelAddress string `db:"hotel_address"`
	HotelTel     string `db:"hotel_tel"`
}

func (row *bookingRow) toModel() models.Booking {
	b := row.Booking
	b.Hotel = &models.HotelSummary{
		ID:      b.HotelID,
		Name:    row.HotelName,
		Address: row.HotelAddress,
		Tel:     row.HotelTel,
	}
	return b
}

const bookingSelect = `
	SELECT b.id, b.start_date, b.nights, b.user_id, b.hotel_id, b.created_at,
	       h.name AS hotel_name, h.address AS hotel_address, h.tel AS hotel_tel
	FROM bookings b
	JOIN hotels h ON h.id = b.hotel_id
`

func (r *BookingRepository) list(where string, args ...any) ([]models.Booking, error) {
	rows := []bookingRow{}
	q := bookingSelect + where + " ORDER BY b.created_at DESC"
	if err := r.db.Select(&rows, q, args...); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]models.Booking, len(rows))
	for i := range rows {
		bookings[i] = rows[i].toModel()
	}
	return bookings, nil
}

func (r *BookingRepository) ListAll() ([]models.Booking, error) {
	return r.list("")
}

func (r *BookingRepository) ListByUser(userID uuid.UUID) ([]models.Booking, error) {
	return r.list("WHERE b.user_id = $1", userID)
}

func (r *BookingRepository) ListByHotel(hotelID uuid.UUID) ([]models.Booking, error) {
	return r.list("WHERE b.hotel_id = $1", hotelID)
}

func (r *BookingRepository) GetByID(id uuid.UUID) (*models.Booking, error) {
	var row bookingRow
	if err := r.db.Get(&row, bookingSelect+"WHERE b.id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	b := row.toModel()
	return &b, nil
}

// CountByUser backs the booking quota check. The read is not atomic with
// the subsequent insert, so two concurrent creates can both observe a
// count under the limit.
func (r *BookingRepository) CountByUser(userID uuid.UUID) (int, error) {
	var n int
	if err := r.db.Get(&n, `SELECT count(*) FROM bookings WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return n, nil
}

func (r *BookingRepository) Create(b *models.Booking) error {
	query := `
		INSERT INTO bookings (id, start_date, nights, user_id, hotel_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowx(query, b.ID, b.StartDate, b.Nights, b.UserID, b.HotelID).
		Scan(&b.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) Update(b *models.Booking) error {
	query := `
		UPDATE bookings
		SET start_date = $1, nights = $2, hotel_id = $3
		WHERE id = $4
	`
	res, err := r.db.Exec(query, b.StartDate, b.Nights, b.HotelID, b.ID)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(id uuid.UUID) error {
	res, err := r.db.Exec(`DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
