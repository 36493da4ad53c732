package users

import (
	"context"
	"time"

	"courier-tracking/internal/domain"
)

// userRepository defines storage operations required by the listing layer.
type userRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	ListCouriers(ctx context.Context) ([]domain.User, error)
}

// Service exposes account listings.
type Service struct {
	repo             userRepository
	operationTimeout time.Duration
}

// NewService creates and configures the users service.
func NewService(repo userRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: repo, operationTimeout: timeout}
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()
	return s.repo.List(ctx)
}

// ListCouriers returns delivery courier accounts only.
func (s *Service) ListCouriers(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()
	return s.repo.ListCouriers(ctx)
}
