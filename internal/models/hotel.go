package models

import (
	"time"

	"github.com/google/uuid"
)

type Hotel struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Address     string    `db:"address" json:"address"`
	Tel         string    `db:"tel" json:"tel"`
	Description string    `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// HotelSummary is the subset of hotel fields joined onto booking reads.
type HotelSummary struct {
	ID      uuid.UUID `db:"-" json:"id"`
	Name    string    `db:"name" json:"name"`
	Address string    `db:"address" json:"address"`
	Tel     string    `db:"tel" json:"tel"`
}
