package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"courier-tracking/internal/apperr"
	"courier-tracking/internal/domain"
)

// PackageRepo persists package records and their assignment state.
type PackageRepo struct{ db *pgxpool.Pool }

// NewPackageRepo creates a new PackageRepo.
func NewPackageRepo(db *pgxpool.Pool) *PackageRepo { return &PackageRepo{db: db} }

const packageColumns = `id, delivery_address, delivery_lat, delivery_lng, status, assigned_to, created_at`

func scanPackage(row pgx.Row) (*domain.Package, error) {
	var p domain.Package
	err := row.Scan(&p.ID, &p.DeliveryAddress, &p.DeliveryLat, &p.DeliveryLng,
		&p.Status, &p.AssignedTo, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new package and returns the stored row.
func (r *PackageRepo) Create(ctx context.Context, np domain.NewPackage, createdAt time.Time) (*domain.Package, error) {
	p, err := scanPackage(r.db.QueryRow(ctx, `
        INSERT INTO packages (delivery_address, delivery_lat, delivery_lng, status, assigned_to, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING `+packageColumns,
		np.DeliveryAddress, np.DeliveryLat, np.DeliveryLng, string(np.Status), np.AssignedTo, createdAt))
	if err != nil {
		if IsForeignKey(err) {
			return nil, apperr.NotFound
		}
		return nil, fmt.Errorf("create package: %w", err)
	}
	return p, nil
}

// List returns packages matching the filter, newest first. Nil filter fields
// are not applied.
func (r *PackageRepo) List(ctx context.Context, f domain.PackageFilter) ([]domain.Package, error) {
	q := `SELECT ` + packageColumns + ` FROM packages`
	args := make([]any, 0, 2)
	where := ""
	if f.Status != nil {
		args = append(args, string(*f.Status))
		where = fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	if f.AssignedTo != nil {
		args = append(args, *f.AssignedTo)
		if where == "" {
			where = fmt.Sprintf(" WHERE assigned_to = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND assigned_to = $%d", len(args))
		}
	}
	q += where + ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()
	return collectPackages(rows)
}

// ListForCourier returns the packages assigned to a courier, newest first.
func (r *PackageRepo) ListForCourier(ctx context.Context, courierID int64) ([]domain.Package, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE assigned_to = $1 ORDER BY created_at DESC`,
		courierID)
	if err != nil {
		return nil, fmt.Errorf("list packages for courier %d: %w", courierID, err)
	}
	defer rows.Close()
	return collectPackages(rows)
}

// UpdateStatus sets the status of a package owned by the requesting courier.
// Returns nil if no row matched, covering both "package does not exist" and
// "assigned to another courier".
func (r *PackageRepo) UpdateStatus(ctx context.Context, pkgID int64, status domain.PackageStatus, courierID int64) (*domain.Package, error) {
	p, err := scanPackage(r.db.QueryRow(ctx, `
        UPDATE packages
        SET status = $1
        WHERE id = $2 AND assigned_to = $3
        RETURNING `+packageColumns,
		string(status), pkgID, courierID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update status of package %d: %w", pkgID, err)
	}
	return p, nil
}

func collectPackages(rows pgx.Rows) ([]domain.Package, error) {
	out := make([]domain.Package, 0)
	for rows.Next() {
		var p domain.Package
		if err := rows.Scan(&p.ID, &p.DeliveryAddress, &p.DeliveryLat, &p.DeliveryLng,
			&p.Status, &p.AssignedTo, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
