package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrMalformedRecord  = errors.New("malformed record")
	ErrEmptyEmail       = errors.New("email is required")
	ErrEmptyPassword    = errors.New("password is required")
	ErrShortPassword    = errors.New("password is too short")
	ErrEmptyDisplayName = errors.New("display name is required")
)
