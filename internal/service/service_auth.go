package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/remy-site/internal/auth"
	"github.com/MKhiriev/remy-site/internal/logger"
	"github.com/MKhiriev/remy-site/internal/metrics"
	"github.com/MKhiriev/remy-site/internal/store"
	"github.com/MKhiriev/remy-site/models"
)

// Account field limits, counted in characters.
const (
	MinNameLength     = 2
	MaxNameLength     = 30
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// dummyHash is verified against when the account does not exist so that
// unknown names cost as much as wrong passwords.
var dummyHash = auth.HashPassword("remy-site-dummy-password")

// authService is the concrete implementation of AuthService.
// It validates credentials, hashes passwords with PBKDF2 and persists
// accounts through a UserRepository.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// ids generates primary keys for new accounts.
	ids IDGenerator

	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, ids IDGenerator, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		ids:            ids,
		now:            time.Now,
		logger:         logger,
	}
}

// RegisterUser creates a USER account.
//
// The name is trimmed; the password is taken as-is. Returns:
//   - ErrInvalidName if the name is not 2..30 characters.
//   - ErrInvalidPassword if the password is not 6..72 characters.
//   - store.ErrNameAlreadyTaken if the name is in use.
func (a *authService) RegisterUser(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(credentials.Name)
	if !lengthBetween(name, MinNameLength, MaxNameLength) {
		return models.User{}, ErrInvalidName
	}
	if !lengthBetween(credentials.Password, MinPasswordLength, MaxPasswordLength) {
		return models.User{}, ErrInvalidPassword
	}

	user := models.User{
		ID:           a.ids.Generate(),
		Name:         name,
		PasswordHash: auth.HashPassword(credentials.Password),
		Role:         auth.RoleUser,
		CreatedAt:    a.now().UTC(),
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("name", name).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	metrics.RecordLogin(metrics.LoginRegistered)
	log.Info().Str("user_id", registeredUser.ID).Str("name", name).Msg("user registered")
	return registeredUser, nil
}

// Login authenticates an existing account.
//
// Returns:
//   - ErrMissingCredentials if the name (after trimming) or password is empty.
//   - ErrInvalidCredentials if the account does not exist or the password
//     does not match.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(credentials.Name)
	if name == "" || credentials.Password == "" {
		return models.User{}, ErrMissingCredentials
	}

	foundUser, err := a.userRepository.FindUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			auth.VerifyPassword(credentials.Password, dummyHash)
			metrics.RecordLogin(metrics.LoginFailed)
			log.Info().Str("name", name).Msg("login for unknown user")
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Str("name", name).Msg("user search by name failed")
		return models.User{}, fmt.Errorf("user search by name failed: %w", err)
	}

	if !auth.VerifyPassword(credentials.Password, foundUser.PasswordHash) {
		metrics.RecordLogin(metrics.LoginFailed)
		log.Info().Str("user_id", foundUser.ID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	metrics.RecordLogin(metrics.LoginSucceeded)
	return foundUser, nil
}

// EnsureAdmin gives the named account the ADMIN role, creating it with
// credentials.Password when it does not exist yet.
func (a *authService) EnsureAdmin(ctx context.Context, credentials models.Credentials) (models.User, bool, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(credentials.Name)
	if !lengthBetween(name, MinNameLength, MaxNameLength) {
		return models.User{}, false, ErrInvalidName
	}

	existing, err := a.userRepository.FindUserByName(ctx, name)
	switch {
	case err == nil:
		existing.Role = auth.RoleAdmin
		if err = a.userRepository.UpdateUserRole(ctx, existing); err != nil {
			return models.User{}, false, fmt.Errorf("cannot promote user: %w", err)
		}
		log.Info().Str("user_id", existing.ID).Str("name", name).Msg("user promoted to admin")
		return existing, false, nil
	case !errors.Is(err, store.ErrNoUserWasFound):
		return models.User{}, false, fmt.Errorf("user search by name failed: %w", err)
	}

	if !lengthBetween(credentials.Password, MinPasswordLength, MaxPasswordLength) {
		return models.User{}, false, ErrInvalidPassword
	}

	admin := models.User{
		ID:           a.ids.Generate(),
		Name:         name,
		PasswordHash: auth.HashPassword(credentials.Password),
		Role:         auth.RoleAdmin,
		CreatedAt:    a.now().UTC(),
	}
	created, err := a.userRepository.CreateUser(ctx, admin)
	if err != nil {
		return models.User{}, false, fmt.Errorf("admin creation ended with error: %w", err)
	}

	log.Info().Str("user_id", created.ID).Str("name", name).Msg("admin created")
	return created, true, nil
}

func lengthBetween(s string, minimum, maximum int) bool {
	n := utf8.RuneCountInString(s)
	return n >= minimum && n <= maximum
}
