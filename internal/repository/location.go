package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"courier-tracking/internal/apperr"
	"courier-tracking/internal/domain"
)

// LocationRepo persists the single live location row kept per courier.
type LocationRepo struct{ db *pgxpool.Pool }

// NewLocationRepo creates a new LocationRepo.
func NewLocationRepo(db *pgxpool.Pool) *LocationRepo { return &LocationRepo{db: db} }

const positionColumns = `user_id, last_lat, last_lng, status, last_update`

// Update overwrites the courier's live row and returns it, or nil if the
// courier has never reported before.
func (r *LocationRepo) Update(ctx context.Context, rep domain.PositionReport, now time.Time) (*domain.CourierPosition, error) {
	var p domain.CourierPosition
	err := r.db.QueryRow(ctx, `
        UPDATE delivery_status
        SET last_lat = $2, last_lng = $3, status = $4, last_update = $5
        WHERE user_id = $1
        RETURNING `+positionColumns,
		rep.CourierID, rep.Lat, rep.Lng, string(rep.Status), now,
	).Scan(&p.CourierID, &p.Lat, &p.Lng, &p.Status, &p.LastUpdate)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update position for courier %d: %w", rep.CourierID, err)
	}
	return &p, nil
}

// Insert creates the courier's first live row. The unique constraint on
// user_id backs the update-then-insert sequence: a concurrent first report
// surfaces here as apperr.Conflict and the caller retries as an update.
func (r *LocationRepo) Insert(ctx context.Context, rep domain.PositionReport, now time.Time) (*domain.CourierPosition, error) {
	var p domain.CourierPosition
	err := r.db.QueryRow(ctx, `
        INSERT INTO delivery_status (user_id, last_lat, last_lng, status, last_update)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING `+positionColumns,
		rep.CourierID, rep.Lat, rep.Lng, string(rep.Status), now,
	).Scan(&p.CourierID, &p.Lat, &p.Lng, &p.Status, &p.LastUpdate)
	if err != nil {
		if IsDuplicate(err) {
			return nil, apperr.Conflict
		}
		if IsForeignKey(err) {
			return nil, apperr.NotFound
		}
		return nil, fmt.Errorf("insert position for courier %d: %w", rep.CourierID, err)
	}
	return &p, nil
}

// Latest returns the courier's live row, or nil if none exists.
func (r *LocationRepo) Latest(ctx context.Context, courierID int64) (*domain.CourierPosition, error) {
	var p domain.CourierPosition
	err := r.db.QueryRow(ctx,
		`SELECT `+positionColumns+` FROM delivery_status WHERE user_id = $1`, courierID,
	).Scan(&p.CourierID, &p.Lat, &p.Lng, &p.Status, &p.LastUpdate)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest position for courier %d: %w", courierID, err)
	}
	return &p, nil
}

// LatestAll returns the live row of every courier that has reported,
// most recent first. The primary key on user_id guarantees at most one
// row per courier.
func (r *LocationRepo) LatestAll(ctx context.Context) ([]domain.CourierPosition, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+positionColumns+` FROM delivery_status ORDER BY last_update DESC`)
	if err != nil {
		return nil, fmt.Errorf("list latest positions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.CourierPosition, 0)
	for rows.Next() {
		var p domain.CourierPosition
		if err := rows.Scan(&p.CourierID, &p.Lat, &p.Lng, &p.Status, &p.LastUpdate); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListJoined returns every live position joined with the courier's username.
// This is the snapshot pushed to observers.
func (r *LocationRepo) ListJoined(ctx context.Context) ([]domain.CourierPosition, error) {
	rows, err := r.db.Query(ctx, `
        SELECT ds.user_id, ds.last_lat, ds.last_lng, ds.status, ds.last_update, u.username
        FROM delivery_status ds
        INNER JOIN users u ON ds.user_id = u.id
        ORDER BY ds.last_update DESC`)
	if err != nil {
		return nil, fmt.Errorf("list joined positions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.CourierPosition, 0)
	for rows.Next() {
		var p domain.CourierPosition
		if err := rows.Scan(&p.CourierID, &p.Lat, &p.Lng, &p.Status, &p.LastUpdate, &p.CourierName); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
