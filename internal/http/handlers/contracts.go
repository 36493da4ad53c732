package handlers

import (
	"context"

	"courier-tracking/internal/domain"
	"courier-tracking/internal/service/auth"
	"courier-tracking/internal/service/location"
	"courier-tracking/internal/service/pkgreg"
	"courier-tracking/internal/service/users"
)

type locationUsecase interface {
	Report(ctx context.Context, rep domain.PositionReport) (*domain.CourierPosition, error)
	Latest(ctx context.Context, courierID int64) (*domain.CourierPosition, error)
	LatestAll(ctx context.Context) ([]domain.CourierPosition, error)
	ListJoined(ctx context.Context) ([]domain.CourierPosition, error)
}

// NewLocationUsecase wires a location.Service into a locationUsecase.
func NewLocationUsecase(s *location.Service) locationUsecase {
	return s
}

type packageUsecase interface {
	Create(ctx context.Context, np domain.NewPackage) (*domain.Package, error)
	List(ctx context.Context, f domain.PackageFilter) ([]domain.Package, error)
	ListForCourier(ctx context.Context, courierID int64) ([]domain.Package, error)
	UpdateStatus(ctx context.Context, pkgID int64, status domain.PackageStatus, courierID int64) (*domain.Package, error)
}

// NewPackageUsecase wires a pkgreg.Service into a packageUsecase.
func NewPackageUsecase(s *pkgreg.Service) packageUsecase {
	return s
}

type authUsecase interface {
	Login(ctx context.Context, username, password string) (*domain.User, error)
}

// NewAuthUsecase wires an auth.Service into an authUsecase.
func NewAuthUsecase(s *auth.Service) authUsecase {
	return s
}

type userLister interface {
	List(ctx context.Context) ([]domain.User, error)
	ListCouriers(ctx context.Context) ([]domain.User, error)
}

// NewUserLister wires a users.Service into a userLister.
func NewUserLister(s *users.Service) userLister {
	return s
}
