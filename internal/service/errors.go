package service

import "errors"

var (
	// ErrDuplicateAccount matches every [*DuplicateAccountError].
	ErrDuplicateAccount = errors.New("an account with this email already exists")

	// ErrInvalidCredentials matches every [*InvalidCredentialsError].
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// DuplicateAccountError is returned by registration when the email is
// already taken.
type DuplicateAccountError struct {
	Email string
}

func (e *DuplicateAccountError) Error() string {
	return ErrDuplicateAccount.Error()
}

func (e *DuplicateAccountError) Is(target error) bool {
	return target == ErrDuplicateAccount
}

// InvalidCredentialsError is returned by login for an unknown email and for
// a wrong password alike. It carries no detail.
type InvalidCredentialsError struct{}

func (e *InvalidCredentialsError) Error() string {
	return ErrInvalidCredentials.Error()
}

func (e *InvalidCredentialsError) Is(target error) bool {
	return target == ErrInvalidCredentials
}
