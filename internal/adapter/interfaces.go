// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the energy-keeper HTTP API.
//
// [AuthAdapter] decouples the CLI from the transport. Error values defined in
// errors.go are mapped from HTTP status codes by mapHTTPError so callers can
// use [errors.Is] (e.g. [ErrConflict] for a taken email, [ErrUnauthorized]
// for rejected credentials).
package adapter

import (
	"context"

	"github.com/MKhiriev/energy-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/auth_adapter_mock.go -package=mock

// AuthAdapter talks to the credential endpoints of the server.
type AuthAdapter interface {
	// Register creates an account and signs it in.
	Register(ctx context.Context, req models.RegisterRequest) (models.Session, error)

	// Login signs in with existing credentials.
	Login(ctx context.Context, req models.LoginRequest) (models.Session, error)

	// Logout clears the current session.
	Logout(ctx context.Context) error

	// Session returns the current session. ok is false when nobody is
	// signed in.
	Session(ctx context.Context) (session models.Session, ok bool, err error)

	// Prefix returns the KV prefix of the current user, "" when anonymous.
	Prefix(ctx context.Context) (string, error)

	// Version returns the server build version.
	Version(ctx context.Context) (string, error)
}
