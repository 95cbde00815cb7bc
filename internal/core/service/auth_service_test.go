package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/simplecrm/crm-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
	nextID  int
	// calls counts every repository method invocation, to prove local
	// validation short-circuits before storage is touched.
	calls int
	// updateErr, if set, is returned by Update.
	updateErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[string]*domain.User),
		nextID:  1,
	}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.calls++
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	clone := *user
	clone.ID = "user_" + strconv.Itoa(r.nextID)
	r.nextID++
	r.byEmail[clone.Email] = &clone
	r.byID[clone.ID] = &clone
	copied := clone
	return &copied, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.calls++
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.calls++
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.calls++
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.byID[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if other, exists := r.byEmail[user.Email]; exists && other.ID != user.ID {
		return domain.ErrEmailTaken
	}
	delete(r.byEmail, stored.Email)
	clone := *user
	r.byID[user.ID] = &clone
	r.byEmail[user.Email] = &clone
	return nil
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Defaults(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	user, err := svc.Register(context.Background(), "alice@example.com", "password1", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Role != domain.RoleUser {
		t.Errorf("expected default role %q, got %q", domain.RoleUser, user.Role)
	}
	if user.FullName != domain.DefaultFullName {
		t.Errorf("expected default full name %q, got %q", domain.DefaultFullName, user.FullName)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password1")) != nil {
		t.Error("stored hash must verify against the password")
	}
}

func TestAuthService_Register_UnknownRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, err := svc.Register(context.Background(), "alice@example.com", "password1", "", "superuser")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "alice@example.com", "password1", "", ""); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), "alice@example.com", "password2", "", "")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	registered, err := svc.Register(context.Background(), "alice@example.com", "password1", "Alice", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alice@example.com", "password1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("login returned wrong user: %q", user.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims["sub"] != registered.ID {
		t.Errorf("sub claim = %v, want %q", claims["sub"], registered.ID)
	}
	if claims["email"] != "alice@example.com" {
		t.Errorf("email claim = %v", claims["email"])
	}
	if claims["role"] != domain.RoleAdmin {
		t.Errorf("role claim = %v", claims["role"])
	}
	if _, ok := claims["iat"]; !ok {
		t.Error("iat claim must be set")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "alice@example.com", "password1", "", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "password1")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
