package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"courier-tracking/internal/apperr"
	"courier-tracking/internal/domain"
)

type mockUserRepo struct {
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	createFn        func(ctx context.Context, u *domain.User) (int64, error)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.getByUsernameFn(ctx, username)
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) (int64, error) {
	return m.createFn(ctx, u)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(hash)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{
				ID:           7,
				Username:     username,
				PasswordHash: hashOf(t, "s3cret"),
				Role:         domain.RoleCourier,
			}, nil
		},
	}
	service := NewService(repo, time.Second)

	u, err := service.Login(context.Background(), "ana", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != 7 || u.Username != "ana" {
		t.Fatalf("unexpected user: %#v", u)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: 7, Username: username, PasswordHash: hashOf(t, "s3cret")}, nil
		},
	}
	service := NewService(repo, time.Second)

	_, err := service.Login(context.Background(), "ana", "wrong")
	if !errors.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return nil, nil
		},
	}
	service := NewService(repo, time.Second)

	_, err := service.Login(context.Background(), "nadie", "whatever")
	if !errors.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestLogin_EmptyCredentials(t *testing.T) {
	t.Parallel()

	service := NewService(&mockUserRepo{}, time.Second)

	if _, err := service.Login(context.Background(), "  ", "pw"); !errors.Is(err, apperr.Invalid) {
		t.Fatalf("blank username: expected Invalid, got %v", err)
	}
	if _, err := service.Login(context.Background(), "ana", ""); !errors.Is(err, apperr.Invalid) {
		t.Fatalf("empty password: expected Invalid, got %v", err)
	}
}

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	t.Parallel()

	var stored *domain.User
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, u *domain.User) (int64, error) {
			stored = u
			return 11, nil
		},
	}
	service := NewService(repo, time.Second)

	id, err := service.Register(context.Background(), "ana", "s3cret", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 11 {
		t.Fatalf("expected id 11, got %d", id)
	}
	if stored.Role != domain.RoleCourier {
		t.Fatalf("expected default role, got %q", stored.Role)
	}
	if stored.PasswordHash == "s3cret" {
		t.Fatal("plaintext password was stored")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegister_InvalidRole(t *testing.T) {
	t.Parallel()

	service := NewService(&mockUserRepo{}, time.Second)
	_, err := service.Register(context.Background(), "ana", "s3cret", "superuser")
	if !errors.Is(err, apperr.Invalid) {
		t.Fatalf("expected Invalid, got %v", err)
	}
}
