// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// StoredUser is the persisted credential record of a registered account.
// One record exists per email; the whole list lives under a single KV key.
//
// PasswordHash and Salt are hex-encoded and must never leave the credential
// core: use [StoredUser.Session] to obtain the public view.
type StoredUser struct {
	// ID is an opaque identifier assigned at registration. Immutable.
	ID string `json:"id" validate:"required"`

	// Email is the unique, case-sensitive login key. No normalization is
	// applied anywhere.
	Email string `json:"email" validate:"required"`

	// DisplayName is the human-readable label shown in the dashboard.
	DisplayName string `json:"displayName"`

	// PasswordHash is the hex-encoded PBKDF2 derived key.
	PasswordHash string `json:"passwordHash" validate:"required,hexadecimal,len=64"`

	// Salt is the hex-encoded per-user random salt. Immutable.
	Salt string `json:"salt" validate:"required,hexadecimal,len=32"`

	// CreatedAt is the registration timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// Session builds the public session view of the record. Hash and salt are
// dropped.
func (u StoredUser) Session() Session {
	return Session{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

// Session is the lightweight, non-secret record identifying the currently
// authenticated user. At most one session is active at a time.
type Session struct {
	ID          string    `json:"id" validate:"required"`
	Email       string    `json:"email" validate:"required"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MinPasswordLength is the shortest password the HTTP API accepts at
// registration.
const MinPasswordLength = 8

// RegisterRequest is the body of POST /api/user/register. It is never
// persisted or logged.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"displayName" validate:"required"`
}

// LoginRequest is the body of POST /api/user/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// PrefixResponse is the body of GET /api/user/prefix.
type PrefixResponse struct {
	Prefix string `json:"prefix"`
}
