package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns raw passwords into non-reversible, verifiable hashes.
// It knows nothing about storage or users; its only job is deriving and
// comparing keys.
//
// Flow:
//
//	salt = GenerateSalt()                 (registration)
//	hash = HashPassword(password, salt)   (registration and login)
//	ok   = VerifyPassword(password, salt, hash)
type PasswordHasher interface {
	// GenerateSalt returns a fresh hex-encoded random salt (16 bytes).
	GenerateSalt() (string, error)

	// HashPassword derives the hex-encoded key for password and the
	// hex-encoded salt. Deterministic for a fixed (password, salt) pair.
	HashPassword(password, salt string) (string, error)

	// VerifyPassword reports whether password derives to expectedHash under
	// salt. Comparison is constant-time.
	VerifyPassword(password, salt, expectedHash string) (bool, error)
}
