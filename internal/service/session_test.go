package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adoptme/adoptme-go/internal/crypto"
	"github.com/adoptme/adoptme-go/internal/model"
	"github.com/adoptme/adoptme-go/internal/repository"
)

func newTestSessionService() (*SessionService, *repository.UserRepository) {
	users := repository.NewUserRepository(repository.NewMemoryUserAdapter(), time.Second)
	return NewSessionService(users, crypto.NewHasher(crypto.HashParams{}), time.Second), users
}

func registerTestUser(t *testing.T, svc *SessionService, email, password string) *model.User {
	t.Helper()
	user, err := svc.Register(context.Background(), model.RegisterRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  password,
	})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	return user
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newTestSessionService()

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		FirstName: "Test",
		Email:     "a@x.com",
	})
	if !errors.Is(err, ErrMissingFields) {
		t.Errorf("Register() error = %v, want ErrMissingFields", err)
	}
}

func TestRegister_DefaultsRoleAndHashesPassword(t *testing.T) {
	svc, _ := newTestSessionService()

	user := registerTestUser(t, svc, "a@x.com", "pw1")

	if user.Role != model.RoleUser {
		t.Errorf("Register() role = %q, want %q", user.Role, model.RoleUser)
	}
	if user.Password == "pw1" || user.Password == "" {
		t.Error("Register() stored the password without hashing")
	}
	if user.LastConnection != nil {
		t.Error("Register() set last_connection before any login")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, users := newTestSessionService()

	registerTestUser(t, svc, "a@x.com", "pw1")

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		FirstName: "Other",
		LastName:  "User",
		Email:     "a@x.com",
		Password:  "pw2",
	})
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("Register() error = %v, want ErrUserExists", err)
	}

	all, err := users.GetAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetAll() unexpected error: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("duplicate registration created a record, have %d users", len(all))
	}
}

func TestLogin_MissingCredentials(t *testing.T) {
	svc, _ := newTestSessionService()

	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@x.com"})
	if !errors.Is(err, ErrCredentialsRequired) {
		t.Errorf("Login() error = %v, want ErrCredentialsRequired", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newTestSessionService()

	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@x.com", Password: "pw1"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Login() error = %v, want ErrUserNotFound", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestSessionService()
	registerTestUser(t, svc, "a@x.com", "pw1")

	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@x.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_AfterRegister(t *testing.T) {
	svc, _ := newTestSessionService()
	registered := registerTestUser(t, svc, "a@x.com", "pw1")

	user, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@x.com", Password: "pw1"})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("Login() id = %q, want %q", user.ID, registered.ID)
	}
	if user.LastConnection == nil {
		t.Error("Login() did not stamp last_connection")
	}
}
