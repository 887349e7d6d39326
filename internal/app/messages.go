// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app is the command-line front end of the energy-keeper client.
//
// It turns sub-commands into [adapter.AuthAdapter] calls and prints the
// outcome. All Msg* constants are the human-readable lines shown to the user;
// keeping them in one place keeps the wording consistent.
package app

import (
	"errors"

	"github.com/MKhiriev/energy-keeper/internal/adapter"
)

const (
	// MsgRegistered is printed after a successful registration.
	MsgRegistered = "registered and signed in as %s (%s)\n"

	// MsgLoggedIn is printed after a successful login.
	MsgLoggedIn = "signed in as %s (%s)\n"

	// MsgLoggedOut is printed after logout.
	MsgLoggedOut = "signed out\n"

	// MsgSession describes the current session.
	MsgSession = "%s <%s>, id %s, since %s\n"

	// MsgNoSession is printed when nobody is signed in.
	MsgNoSession = "not signed in\n"

	// MsgPrefix prints the KV prefix; empty for anonymous.
	MsgPrefix = "%q\n"

	// MsgVersion prints the server version.
	MsgVersion = "server version: %s\n"

	MsgInvalidCredentials = "invalid email or password"
	MsgEmailTaken         = "an account with this email already exists"
	MsgInvalidData        = "invalid data provided"
	MsgServerUnavailable  = "server is unavailable, try again later"

	// MsgUsage lists the supported sub-commands.
	MsgUsage = `usage: energy-client [flags] <command>

commands:
  register <email> <display-name>   create an account and sign in
  login <email>                     sign in
  logout                            sign out
  whoami                            show the current session
  prefix                            show the storage prefix of the current user
  version                           show the server version
`
)

// messageFromError returns the line shown to the user for a failed command.
func messageFromError(err error) string {
	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return MsgInvalidCredentials
	case errors.Is(err, adapter.ErrConflict):
		return MsgEmailTaken
	case errors.Is(err, adapter.ErrBadRequest):
		return err.Error()
	case errors.Is(err, ErrUnknownCommand), errors.Is(err, ErrMissingArgument), errors.Is(err, ErrPasswordMismatch):
		return err.Error()
	default:
		return MsgServerUnavailable
	}
}
