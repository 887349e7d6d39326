// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// Key-derivation parameters of stored credentials. Changing any of them
// invalidates every existing password hash.
const (
	PBKDF2Iterations = 100_000
	SaltLength       = 16 // bytes
	KeyLength        = 32 // bytes, 256 bits
)

// ErrInvalidSalt is returned when a stored salt is not valid hex.
var ErrInvalidSalt = errors.New("invalid salt encoding")

// pbkdf2Hasher is the PBKDF2-HMAC-SHA256 implementation of [PasswordHasher].
type pbkdf2Hasher struct {
	iterations int
	keyLength  int
	saltLength int

	// random is the entropy source for salts.
	random io.Reader
}

// NewPBKDF2Hasher constructs a [PasswordHasher] with the fixed parameters:
//   - PRF:        HMAC-SHA256
//   - iterations: 100 000
//   - salt:       16 random bytes
//   - key length: 32 bytes
func NewPBKDF2Hasher() PasswordHasher {
	return &pbkdf2Hasher{
		iterations: PBKDF2Iterations,
		keyLength:  KeyLength,
		saltLength: SaltLength,
		random:     rand.Reader,
	}
}

// GenerateSalt implements [PasswordHasher]. It reads SaltLength bytes from
// the OS CSPRNG and hex-encodes them.
func (h *pbkdf2Hasher) GenerateSalt() (string, error) {
	salt := make([]byte, h.saltLength)
	if _, err := io.ReadFull(h.random, salt); err != nil {
		return "", fmt.Errorf("read random salt: %w", err)
	}
	return hex.EncodeToString(salt), nil
}

// HashPassword implements [PasswordHasher]. The salt is hex-decoded and used
// as the raw KDF salt parameter.
func (h *pbkdf2Hasher) HashPassword(password, salt string) (string, error) {
	saltBytes, err := hex.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSalt, err)
	}

	key := pbkdf2.Key([]byte(password), saltBytes, h.iterations, h.keyLength, sha256.New)
	return hex.EncodeToString(key), nil
}

// VerifyPassword implements [PasswordHasher].
func (h *pbkdf2Hasher) VerifyPassword(password, salt, expectedHash string) (bool, error) {
	computed, err := h.HashPassword(password, salt)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare([]byte(computed), []byte(expectedHash)) == 1, nil
}
