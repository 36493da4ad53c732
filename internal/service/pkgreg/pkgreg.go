package pkgreg

import (
	"context"
	"strings"
	"time"

	"courier-tracking/internal/apperr"
	"courier-tracking/internal/broadcast"
	"courier-tracking/internal/domain"
)

// Service owns package lifecycle and assignment ownership checks.
// Status mutation is uniformly ownership-restricted: only the assigned
// courier may move a package through its lifecycle.
type Service struct {
	repo             packageRepository
	hub              broadcaster
	operationTimeout time.Duration
	now              func() time.Time
}

// NewService creates and configures the package registry.
func NewService(repo packageRepository, hub broadcaster, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             repo,
		hub:              hub,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateNew(np *domain.NewPackage) error {
	if strings.TrimSpace(np.DeliveryAddress) == "" {
		return apperr.Invalid
	}
	if np.Status == "" {
		np.Status = domain.PackageCreated
	}
	if !np.Status.Valid() {
		return apperr.Invalid
	}
	if np.AssignedTo != nil && *np.AssignedTo <= 0 {
		return apperr.Invalid
	}
	if (np.DeliveryLat == nil) != (np.DeliveryLng == nil) {
		return apperr.Invalid
	}
	if np.DeliveryLat != nil && !domain.ValidLatLng(*np.DeliveryLat, *np.DeliveryLng) {
		return apperr.Invalid
	}
	return nil
}

// Create persists a new package. CreatedAt defaults server-side; a
// caller-supplied value is kept for backfill. An assigned package is
// announced to observers.
func (s *Service) Create(ctx context.Context, np domain.NewPackage) (*domain.Package, error) {
	if err := validateNew(&np); err != nil {
		return nil, err
	}
	createdAt := s.now()
	if np.CreatedAt != nil {
		createdAt = np.CreatedAt.UTC()
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	p, err := s.repo.Create(ctx, np, createdAt)
	if err != nil {
		return nil, err
	}

	if p.AssignedTo != nil {
		s.hub.Publish(broadcast.EventPackageAssigned, p)
	}
	return p, nil
}

// List returns packages matching the optional status/assignee filter.
func (s *Service) List(ctx context.Context, f domain.PackageFilter) ([]domain.Package, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, f)
}

// ListForCourier returns the packages assigned to a courier, newest first.
func (s *Service) ListForCourier(ctx context.Context, courierID int64) ([]domain.Package, error) {
	if courierID <= 0 {
		return nil, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListForCourier(ctx, courierID)
}

// UpdateStatus moves a package through its lifecycle on behalf of the
// requesting courier. Zero rows matched means the package does not exist or
// belongs to another courier; both surface as NotFound.
func (s *Service) UpdateStatus(ctx context.Context, pkgID int64, status domain.PackageStatus, courierID int64) (*domain.Package, error) {
	if pkgID <= 0 || courierID <= 0 {
		return nil, apperr.Invalid
	}
	if !status.Valid() {
		return nil, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	p, err := s.repo.UpdateStatus(ctx, pkgID, status, courierID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound
	}
	return p, nil
}
