package pkgreg

import (
	"context"
	"time"

	"courier-tracking/internal/domain"
)

// packageRepository defines storage operations required by the registry.
type packageRepository interface {
	Create(ctx context.Context, np domain.NewPackage, createdAt time.Time) (*domain.Package, error)
	List(ctx context.Context, f domain.PackageFilter) ([]domain.Package, error)
	ListForCourier(ctx context.Context, courierID int64) ([]domain.Package, error)
	UpdateStatus(ctx context.Context, pkgID int64, status domain.PackageStatus, courierID int64) (*domain.Package, error)
}

// broadcaster receives assignment events.
type broadcaster interface {
	Publish(event string, payload any)
}
