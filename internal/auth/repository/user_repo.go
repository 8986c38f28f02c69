package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/health-wallet/go-wallet-backend/internal/apperr"
	"github.com/health-wallet/go-wallet-backend/internal/auth/domain"
	"github.com/health-wallet/go-wallet-backend/internal/dbx"
)

// UserRepository provides persistence operations for user accounts.
type UserRepository struct {
	db dbx.DBTX
}

func NewUserRepository(db dbx.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. A duplicate email maps to ErrConflict.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	const q = `
INSERT INTO users (id, email, password_hash, name)
VALUES ($1, $2, $3, $4)
RETURNING created_at;
`
	err := r.db.QueryRowContext(ctx, q, u.ID, u.Email, u.PasswordHash, u.Name).
		Scan(&u.CreatedAt)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("email already registered: %w", apperr.ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `
SELECT id, email, password_hash, name, created_at
FROM users
WHERE id = $1;
`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
SELECT id, email, password_hash, name, created_at
FROM users
WHERE email = $1;
`
	return r.scanOne(r.db.QueryRowContext(ctx, q, email))
}

// SearchByEmail returns up to limit users whose email contains the query,
// excluding the searching user. Used by the sharing UI to pick a recipient.
func (r *UserRepository) SearchByEmail(ctx context.Context, query, excludeID string, limit int) ([]domain.Summary, error) {
	const q = `
SELECT id, email, name
FROM users
WHERE email ILIKE '%' || $1 || '%' AND id != $2
ORDER BY email
LIMIT $3;
`
	rows, err := r.db.QueryContext(ctx, q, query, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Summary, 0, limit)
	for rows.Next() {
		var s domain.Summary
		if err := rows.Scan(&s.ID, &s.Email, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *UserRepository) scanOne(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
