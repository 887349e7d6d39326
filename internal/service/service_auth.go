package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/energy-keeper/internal/config"
	"github.com/MKhiriev/energy-keeper/internal/crypto"
	"github.com/MKhiriev/energy-keeper/internal/logger"
	"github.com/MKhiriev/energy-keeper/internal/metrics"
	"github.com/MKhiriev/energy-keeper/internal/store"
	"github.com/MKhiriev/energy-keeper/models"
)

// userKVPrefixFormat scopes per-user application data, see [authService.UserKVPrefix].
const userKVPrefixFormat = "user-%s-"

// authService is the concrete implementation of [AuthService].
type authService struct {
	userRepository    store.UserRepository
	sessionRepository store.SessionRepository

	hasher crypto.PasswordHasher
	ids    IDGenerator
	now    func() time.Time

	// sessionRestoreTimeout bounds [authService.GetSession].
	sessionRestoreTimeout time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] over the given repositories.
// A non-positive session restore timeout falls back to
// [config.DefaultSessionRestoreTimeout].
func NewAuthService(
	userRepository store.UserRepository,
	sessionRepository store.SessionRepository,
	hasher crypto.PasswordHasher,
	ids IDGenerator,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	timeout := cfg.SessionRestoreTimeout
	if timeout <= 0 {
		timeout = config.DefaultSessionRestoreTimeout
	}

	return &authService{
		userRepository:        userRepository,
		sessionRepository:     sessionRepository,
		hasher:                hasher,
		ids:                   ids,
		now:                   time.Now,
		sessionRestoreTimeout: timeout,
		logger:                logger,
	}
}

// RegisterUser creates a new account and logs it in.
//
// A fresh random salt is generated, the password is stretched with PBKDF2,
// and the record is appended to the user list. The new session is then
// persisted and its public view returned.
//
// Returns:
//   - [*DuplicateAccountError] if the email is already registered (exact match).
//   - A wrapped storage error if reading or writing the store fails.
func (a *authService) RegisterUser(ctx context.Context, email, password, displayName string) (models.Session, error) {
	log := logger.FromContext(ctx)

	salt, err := a.hasher.GenerateSalt()
	if err != nil {
		log.Err(err).Msg("error generating salt")
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultError).Inc()
		return models.Session{}, fmt.Errorf("error generating salt: %w", err)
	}

	hash, err := a.hasher.HashPassword(password, salt)
	if err != nil {
		log.Err(err).Msg("error hashing password")
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultError).Inc()
		return models.Session{}, fmt.Errorf("error hashing password: %w", err)
	}

	user := models.StoredUser{
		ID:           a.ids.Generate(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		Salt:         salt,
		CreatedAt:    a.now().UTC(),
	}

	if err = a.userRepository.Append(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			log.Info().Msg("registration rejected: email already registered")
			metrics.RegistrationsTotal.WithLabelValues(metrics.ResultDuplicate).Inc()
			return models.Session{}, &DuplicateAccountError{Email: email}
		}
		log.Err(err).Msg("user creation ended with error")
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultError).Inc()
		return models.Session{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	session := user.Session()
	if err = a.sessionRepository.Set(ctx, session); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("error persisting session after registration")
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultError).Inc()
		return models.Session{}, fmt.Errorf("error persisting session: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("user registered")
	metrics.RegistrationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return session, nil
}

// LoginUser authenticates email and password against the stored list.
//
// Unknown email and wrong password both return [*InvalidCredentialsError]
// with the same message. On success the session slot is overwritten.
func (a *authService) LoginUser(ctx context.Context, email, password string) (models.Session, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Info().Msg("login rejected")
		metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return models.Session{}, &InvalidCredentialsError{}
	}
	if err != nil {
		log.Err(err).Msg("error looking up user")
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return models.Session{}, fmt.Errorf("error looking up user: %w", err)
	}

	ok, err := a.hasher.VerifyPassword(password, user.Salt, user.PasswordHash)
	if err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("error verifying password")
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return models.Session{}, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		log.Info().Msg("login rejected")
		metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return models.Session{}, &InvalidCredentialsError{}
	}

	session := user.Session()
	if err = a.sessionRepository.Set(ctx, session); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("error persisting session after login")
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return models.Session{}, fmt.Errorf("error persisting session: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("user logged in")
	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return session, nil
}

// LogoutUser deletes the session slot. An empty slot is not an error.
func (a *authService) LogoutUser(ctx context.Context) error {
	if err := a.sessionRepository.Clear(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Msg("error clearing session")
		return fmt.Errorf("error clearing session: %w", err)
	}

	metrics.LogoutsTotal.Inc()
	return nil
}

type sessionResult struct {
	session models.Session
	err     error
}

// GetSession reads the session slot, giving up after the restore timeout.
//
// The read runs in its own goroutine so that a store ignoring ctx cannot
// block the caller. Timeout, read errors, a missing slot and malformed data
// all report (zero, false).
func (a *authService) GetSession(ctx context.Context) (models.Session, bool) {
	log := logger.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, a.sessionRestoreTimeout)
	defer cancel()

	// buffered: an abandoned read must not leak a blocked sender
	results := make(chan sessionResult, 1)
	go func() {
		session, err := a.sessionRepository.Get(ctx)
		results <- sessionResult{session: session, err: err}
	}()

	select {
	case <-ctx.Done():
		log.Warn().Dur("timeout", a.sessionRestoreTimeout).Msg("session restore timed out")
		metrics.SessionRestoresTotal.WithLabelValues(metrics.ResultTimeout).Inc()
		return models.Session{}, false

	case res := <-results:
		if res.err != nil {
			if !errors.Is(res.err, store.ErrKeyNotFound) {
				log.Warn().Err(res.err).Msg("discarding unreadable session")
			}
			metrics.SessionRestoresTotal.WithLabelValues(metrics.ResultNone).Inc()
			return models.Session{}, false
		}

		metrics.SessionRestoresTotal.WithLabelValues(metrics.ResultRestored).Inc()
		return res.session, true
	}
}

// UserKVPrefix returns "" for the anonymous user (empty id) and
// "user-<id>-" otherwise. Distinct ids give distinct prefixes.
func (a *authService) UserKVPrefix(userID string) string {
	return UserKVPrefix(userID)
}

// UserKVPrefix is the package-level form of [AuthService.UserKVPrefix].
func UserKVPrefix(userID string) string {
	if userID == "" {
		return ""
	}
	return fmt.Sprintf(userKVPrefixFormat, userID)
}
