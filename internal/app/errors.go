package app

import "errors"

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrMissingArgument  = errors.New("missing argument")
	ErrPasswordMismatch = errors.New("passwords do not match")
)
