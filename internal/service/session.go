package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/adoptme/adoptme-go/internal/crypto"
	"github.com/adoptme/adoptme-go/internal/model"
	"github.com/adoptme/adoptme-go/internal/repository"
)

var (
	ErrMissingFields       = errors.New("all fields are required")
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrUserExists          = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// SessionService orchestrates registration and credential verification. Token
// issuance is delegated to a SessionIssuer by the caller, so the same
// verification serves both trust profiles.
type SessionService struct {
	users   *repository.UserRepository
	hasher  *crypto.Hasher
	timeout time.Duration
}

// NewSessionService creates a SessionService. timeout bounds the detached
// last-connection update, which runs outside any request context.
func NewSessionService(users *repository.UserRepository, hasher *crypto.Hasher, timeout time.Duration) *SessionService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &SessionService{users: users, hasher: hasher, timeout: timeout}
}

// Register creates a new user with a hashed credential and the default role.
func (s *SessionService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hash,
		Role:      model.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// The adapter's unique constraint closes the check-then-insert race.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return user, nil
}

// Login verifies the credential pair and returns the stored user. The
// last-connection stamp is updated in a detached goroutine; its failure is
// logged and never surfaced to the caller.
func (s *SessionService) Login(ctx context.Context, req model.LoginRequest) (*model.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	match, err := s.hasher.Verify(req.Password, user.Password)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.users.UpdateLastConnection(ctx, user.ID, now); err != nil {
			slog.Warn("last connection update failed", "user_id", user.ID, "error", err)
		}
	}()
	user.LastConnection = &now

	return user, nil
}
