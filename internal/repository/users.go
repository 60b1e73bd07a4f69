package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/nattapon-dev/hotel-booking-api/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	query := `
		INSERT INTO users (id, name, telephone, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowx(query, u.ID, u.Name, u.Telephone, u.Email, u.Password, u.Role).
		Scan(&u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail loads the full row including the password hash; callers that
// serialize a user must go through the model's json tags.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	query := `
		SELECT id, name, telephone, email, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`
	if err := r.db.Get(&u, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var u models.User
	query := `
		SELECT id, name, telephone, email, password_hash, role, created_at
		FROM users
		WHERE id = $1
	`
	if err := r.db.Get(&u, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) UpdateRole(id uuid.UUID, role models.Role) (*models.User, error) {
	var u models.User
	query := `
		UPDATE users
		SET role = $1
		WHERE id = $2
		RETURNING id, name, telephone, email, password_hash, role, created_at
	`
	if err := r.db.Get(&u, query, role, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return &u, nil
}
