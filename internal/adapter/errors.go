package adapter

import "errors"

var (
	ErrInvalidAddress      = errors.New("invalid adapter http address")
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("invalid email or password")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("an account with this email already exists")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)
