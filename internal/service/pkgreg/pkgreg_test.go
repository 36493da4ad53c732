package pkgreg

import (
	"context"
	"errors"
	"testing"
	"time"

	"courier-tracking/internal/apperr"
	"courier-tracking/internal/broadcast"
	"courier-tracking/internal/domain"
)

type mockPackageRepo struct {
	createFn         func(ctx context.Context, np domain.NewPackage, createdAt time.Time) (*domain.Package, error)
	listFn           func(ctx context.Context, f domain.PackageFilter) ([]domain.Package, error)
	listForCourierFn func(ctx context.Context, courierID int64) ([]domain.Package, error)
	updateStatusFn   func(ctx context.Context, pkgID int64, status domain.PackageStatus, courierID int64) (*domain.Package, error)
}

func (m *mockPackageRepo) Create(ctx context.Context, np domain.NewPackage, createdAt time.Time) (*domain.Package, error) {
	return m.createFn(ctx, np, createdAt)
}

func (m *mockPackageRepo) List(ctx context.Context, f domain.PackageFilter) ([]domain.Package, error) {
	return m.listFn(ctx, f)
}

func (m *mockPackageRepo) ListForCourier(ctx context.Context, courierID int64) ([]domain.Package, error) {
	return m.listForCourierFn(ctx, courierID)
}

func (m *mockPackageRepo) UpdateStatus(ctx context.Context, pkgID int64, status domain.PackageStatus, courierID int64) (*domain.Package, error) {
	return m.updateStatusFn(ctx, pkgID, status, courierID)
}

type publishCall struct {
	event   string
	payload any
}

type mockHub struct {
	calls []publishCall
}

func (h *mockHub) Publish(event string, payload any) {
	h.calls = append(h.calls, publishCall{event: event, payload: payload})
}

func ptrF(f float64) *float64 { return &f }
func ptrI(i int64) *int64     { return &i }

func TestCreate_InvalidInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		np   domain.NewPackage
	}{
		{"empty address", domain.NewPackage{DeliveryAddress: "   "}},
		{"unknown status", domain.NewPackage{DeliveryAddress: "Calle Mayor 1", Status: "lost"}},
		{"zero assignee", domain.NewPackage{DeliveryAddress: "Calle Mayor 1", AssignedTo: ptrI(0)}},
		{"lat without lng", domain.NewPackage{DeliveryAddress: "Calle Mayor 1", DeliveryLat: ptrF(40.0)}},
		{"coords out of range", domain.NewPackage{DeliveryAddress: "Calle Mayor 1", DeliveryLat: ptrF(95.0), DeliveryLng: ptrF(-3.0)}},
	}

	service := NewService(&mockPackageRepo{}, &mockHub{}, time.Second)
	for _, tc := range cases {
		_, err := service.Create(context.Background(), tc.np)
		if !errors.Is(err, apperr.Invalid) {
			t.Fatalf("%s: expected Invalid, got %v", tc.name, err)
		}
	}
}

func TestCreate_DefaultsStatusAndTimestamp(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &mockPackageRepo{
		createFn: func(ctx context.Context, np domain.NewPackage, createdAt time.Time) (*domain.Package, error) {
			if np.Status != domain.PackageCreated {
				t.Fatalf("expected defaulted status, got %q", np.Status)
			}
			if !createdAt.Equal(fixed) {
				t.Fatalf("expected server-side timestamp %v, got %v", fixed, createdAt)
			}
			return &domain.Package{ID: 1, DeliveryAddress: np.DeliveryAddress, Status: np.Status, CreatedAt: createdAt}, nil
		},
	}
	service := NewService(repo, &mockHub{}, time.Second)
	service.now = func() time.Time { return fixed }

	p, err := service.Create(context.Background(), domain.NewPackage{DeliveryAddress: "Calle Mayor 1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 1 {
		t.Fatalf("unexpected package: %#v", p)
	}
}

func TestCreate_KeepsSuppliedTimestamp(t *testing.T) {
	t.Parallel()

	supplied := time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)
	repo := &mockPackageRepo{
		createFn: func(ctx context.Context, np domain.NewPackage, createdAt time.Time) (*domain.Package, error) {
			if !createdAt.Equal(supplied) {
				t.Fatalf("expected supplied timestamp to survive, got %v", createdAt)
			}
			return &domain.Package{ID: 2, CreatedAt: createdAt}, nil
		},
	}
	service := NewService(repo, &mockHub{}, time.Second)

	_, err := service.Create(context.Background(), domain.NewPackage{
		DeliveryAddress: "Calle Mayor 1",
		CreatedAt:       &supplied,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreate_AssignedPackageIsAnnounced(t *testing.T) {
	t.Parallel()

	repo := &mockPackageRepo{
		createFn: func(ctx context.Context, np domain.NewPackage, createdAt time.Time) (*domain.Package, error) {
			return &domain.Package{ID: 3, AssignedTo: np.AssignedTo, Status: np.Status}, nil
		},
	}
	hub := &mockHub{}
	service := NewService(repo, hub, time.Second)

	p, err := service.Create(context.Background(), domain.NewPackage{
		DeliveryAddress: "Calle Mayor 1",
		AssignedTo:      ptrI(7),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hub.calls) != 1 || hub.calls[0].event != broadcast.EventPackageAssigned {
		t.Fatalf("expected one %q publish, got %#v", broadcast.EventPackageAssigned, hub.calls)
	}
	if hub.calls[0].payload != p {
		t.Fatalf("expected the created package as payload")
	}
}

func TestCreate_UnassignedPackageIsSilent(t *testing.T) {
	t.Parallel()

	repo := &mockPackageRepo{
		createFn: func(ctx context.Context, np domain.NewPackage, createdAt time.Time) (*domain.Package, error) {
			return &domain.Package{ID: 4, Status: np.Status}, nil
		},
	}
	hub := &mockHub{}
	service := NewService(repo, hub, time.Second)

	_, err := service.Create(context.Background(), domain.NewPackage{DeliveryAddress: "Calle Mayor 1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hub.calls) != 0 {
		t.Fatalf("expected no publishes, got %#v", hub.calls)
	}
}

func TestList_RejectsUnknownStatusFilter(t *testing.T) {
	t.Parallel()

	service := NewService(&mockPackageRepo{}, &mockHub{}, time.Second)
	bad := domain.PackageStatus("misplaced")
	_, err := service.List(context.Background(), domain.PackageFilter{Status: &bad})
	if !errors.Is(err, apperr.Invalid) {
		t.Fatalf("expected Invalid, got %v", err)
	}
}

func TestUpdateStatus_OwnershipMiss(t *testing.T) {
	t.Parallel()

	repo := &mockPackageRepo{
		updateStatusFn: func(ctx context.Context, pkgID int64, status domain.PackageStatus, courierID int64) (*domain.Package, error) {
			return nil, nil
		},
	}
	service := NewService(repo, &mockHub{}, time.Second)

	_, err := service.UpdateStatus(context.Background(), 5, domain.PackageDelivered, 7)
	if !errors.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestUpdateStatus_InvalidArguments(t *testing.T) {
	t.Parallel()

	service := NewService(&mockPackageRepo{}, &mockHub{}, time.Second)

	if _, err := service.UpdateStatus(context.Background(), 0, domain.PackageDelivered, 7); !errors.Is(err, apperr.Invalid) {
		t.Fatalf("zero package id: expected Invalid, got %v", err)
	}
	if _, err := service.UpdateStatus(context.Background(), 5, domain.PackageDelivered, 0); !errors.Is(err, apperr.Invalid) {
		t.Fatalf("zero courier id: expected Invalid, got %v", err)
	}
	if _, err := service.UpdateStatus(context.Background(), 5, "teleported", 7); !errors.Is(err, apperr.Invalid) {
		t.Fatalf("unknown status: expected Invalid, got %v", err)
	}
}

func TestUpdateStatus_Success(t *testing.T) {
	t.Parallel()

	repo := &mockPackageRepo{
		updateStatusFn: func(ctx context.Context, pkgID int64, status domain.PackageStatus, courierID int64) (*domain.Package, error) {
			return &domain.Package{ID: pkgID, Status: status, AssignedTo: &courierID}, nil
		},
	}
	service := NewService(repo, &mockHub{}, time.Second)

	p, err := service.UpdateStatus(context.Background(), 5, domain.PackageInTransit, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 5 || p.Status != domain.PackageInTransit {
		t.Fatalf("unexpected package: %#v", p)
	}
}
