package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"pedidos-backend/internal/database"
	"pedidos-backend/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the subset of the user repository the auth service needs.
type UserStore interface {
	GetByName(ctx context.Context, name string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Count(ctx context.Context) (int, error)
}

// Service handles authentication logic
type Service struct {
	users UserStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewService creates a new auth service
func NewService(users UserStore, log zerolog.Logger) *Service {
	return &Service{users: users, log: log, now: time.Now}
}

// Authenticate checks username and password against the stored user and
// returns the session identity to persist. Unknown users and wrong passwords
// are both ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.Session, error) {
	user, err := s.users.GetByName(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	valid, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		s.log.Warn().Err(err).Str("user", user.Name).Msg("stored password hash is unusable")
		return nil, ErrInvalidCredentials
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	return &models.Session{
		Username:  user.Name,
		IsAdmin:   user.IsAdmin,
		CreatedAt: s.now(),
	}, nil
}

// DefaultUser is a user created by EnsureDefaultUsers.
type DefaultUser struct {
	Name     string
	Password string
	IsAdmin  bool
}

// EnsureDefaultUsers creates the given users when the user table is empty.
// It returns the number of users created.
func (s *Service) EnsureDefaultUsers(ctx context.Context, defaults ...DefaultUser) (int, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil // Users already exist
	}

	created := 0
	for _, d := range defaults {
		if d.Name == "" || d.Password == "" {
			continue
		}

		hash, err := HashPassword(d.Password)
		if err != nil {
			return created, fmt.Errorf("hash password for %s: %w", d.Name, err)
		}

		user := &models.User{Name: d.Name, PasswordHash: hash, IsAdmin: d.IsAdmin}
		if err := s.users.Create(ctx, user); err != nil {
			return created, fmt.Errorf("create user %s: %w", d.Name, err)
		}

		s.log.Warn().Str("user", d.Name).Bool("admin", d.IsAdmin).Msg("created default user - CHANGE THIS PASSWORD!")
		created++
	}

	return created, nil
}
