package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MaxNights is the longest stay a single booking may cover.
	MaxNights = 3
	// MaxBookingsPerUser is the quota of concurrently held bookings
	// for a non-admin user.
	MaxBookingsPerUser = 3
)

// Wire field names follow the public API (startDate, user, hotel,
// createdAt). The hotel reference serializes as the joined summary
// object, id included, never as a bare foreign key.
type Booking struct {
	ID        uuid.UUID `db:"id" json:"id"`
	StartDate time.Time `db:"start_date" json:"startDate"`
	Nights    int       `db:"nights" json:"nights"`
	UserID    uuid.UUID `db:"user_id" json:"user"`
	HotelID   uuid.UUID `db:"hotel_id" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	Hotel *HotelSummary `db:"-" json:"hotel,omitempty"`
}
