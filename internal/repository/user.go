package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"courier-tracking/internal/apperr"
	"courier-tracking/internal/domain"
)

// UserRepo persists accounts (administrators and couriers).
type UserRepo struct{ db *pgxpool.Pool }

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *pgxpool.Pool) *UserRepo { return &UserRepo{db: db} }

// List returns all accounts ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	return r.list(ctx, `SELECT id, username, password_hash, role FROM users ORDER BY id`)
}

// ListCouriers returns delivery courier accounts only, by stored role.
func (r *UserRepo) ListCouriers(ctx context.Context) ([]domain.User, error) {
	return r.list(ctx,
		`SELECT id, username, password_hash, role FROM users WHERE role = $1 ORDER BY id`,
		string(domain.RoleCourier))
}

func (r *UserRepo) list(ctx context.Context, q string, args ...any) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// GetByUsername returns the account with the given username, or nil.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, role FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return &u, nil
}

// Create - creates a new account.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO users(username, password_hash, role) VALUES($1, $2, $3) RETURNING id`,
		u.Username, u.PasswordHash, string(u.Role)).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.Conflict
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}
