package service

import (
	"context"

	"github.com/MKhiriev/energy-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService is the credential store and session manager. It owns the user
// list and the single current-session slot.
type AuthService interface {
	// RegisterUser creates an account and logs it in. Inputs are expected to
	// be validated by the caller.
	RegisterUser(ctx context.Context, email, password, displayName string) (models.Session, error)
	// LoginUser verifies the credentials and replaces the current session.
	LoginUser(ctx context.Context, email, password string) (models.Session, error)
	// LogoutUser clears the current session.
	LogoutUser(ctx context.Context) error
	// GetSession restores the current session. It never fails: any problem
	// reading it, including a timeout, reports false.
	GetSession(ctx context.Context) (models.Session, bool)
	// UserKVPrefix returns the key prefix scoping a user's application data.
	UserKVPrefix(userID string) string
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// IDGenerator issues identifiers for new accounts.
type IDGenerator interface {
	Generate() string
}
