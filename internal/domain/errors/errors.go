package errors

import "errors"

var (
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredential  = errors.New("missing or malformed authorization header")
	ErrInvalidCredential  = errors.New("invalid auth credential")
	ErrUnknownUser        = errors.New("unknown user")
)
