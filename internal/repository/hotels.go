package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nattapon-dev/hotel-booking-api/internal/models"
	"github.com/nattapon-dev/hotel-booking-api/internal/query"
)

// hotelColumns is the full projection used when no select was given.
var hotelColumns = []string{"id", "name", "address", "tel", "description", "created_at"}

type HotelRepository struct {
	db *sqlx.DB
}

func NewHotelRepository(db *sqlx.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

// List applies the validated descriptor and returns the page plus the
// total row count under the same predicate.
func (r *HotelRepository) List(opts *query.ListOptions) ([]models.Hotel, int, error) {
	where, args := opts.Where()

	var total int
	countQuery := fmt.Sprintf("SELECT count(*) FROM hotels %s", where)
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count hotels: %w", err)
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM hotels %s %s LIMIT %d OFFSET %d",
		opts.Columns(hotelColumns), where, opts.OrderBy(), opts.Limit, opts.Offset(),
	)

	hotels := []models.Hotel{}
	if err := r.db.Select(&hotels, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list hotels: %w", err)
	}

	return hotels, total, nil
}

func (r *HotelRepository) GetByID(id uuid.UUID) (*models.Hotel, error) {
	var h models.Hotel
	query := `
		SELECT id, name, address, tel, description, created_at
		FROM hotels
		WHERE id = $1
	`
	if err := r.db.Get(&h, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}
	return &h, nil
}

func (r *HotelRepository) Create(h *models.Hotel) error {
	query := `
		INSERT INTO hotels (id, name, address, tel, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowx(query, h.ID, h.Name, h.Address, h.Tel, h.Description).
		Scan(&h.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}
	return nil
}

func (r *HotelRepository) Update(h *models.Hotel) error {
	query := `
		UPDATE hotels
		SET name = $1, address = $2, tel = $3, description = $4
		WHERE id = $5
	`
	res, err := r.db.Exec(query, h.Name, h.Address, h.Tel, h.Description, h.ID)
	if err != nil {
		return fmt.Errorf("failed to update hotel: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCascade removes the hotel's bookings first, then the hotel row,
// in one transaction. Ordering matters: bookings first, so an interrupted
// delete never leaves orphaned references.
func (r *HotelRepository) DeleteCascade(id uuid.UUID) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM bookings WHERE hotel_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete hotel bookings: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM hotels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete hotel: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit hotel delete: %w", err)
	}
	return nil
}
