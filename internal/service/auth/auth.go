package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"courier-tracking/internal/apperr"
	"courier-tracking/internal/domain"
)

// userRepository defines storage operations required by the auth service.
type userRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (int64, error)
}

// Service verifies credentials against bcrypt hashes. No session state is
// kept; a successful login simply returns the account.
type Service struct {
	repo             userRepository
	operationTimeout time.Duration
}

// NewService creates and configures the auth service.
func NewService(repo userRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: repo, operationTimeout: timeout}
}

// Login matches a username/password pair. Unknown username and wrong password
// both return NotFound so callers cannot enumerate accounts.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, apperr.Invalid
	}
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.NotFound
	}
	return u, nil
}

// Register creates an account with a bcrypt-hashed password. Used for
// seeding and tests; the service stores no plaintext credentials anywhere.
func (s *Service) Register(ctx context.Context, username, password string, role domain.Role) (int64, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return 0, apperr.Invalid
	}
	if role == "" {
		role = domain.RoleCourier
	}
	if !role.Valid() {
		return 0, apperr.Invalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()
	return s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	})
}
