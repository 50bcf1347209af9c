package models

import "errors"

var (
	// ErrUnauthenticated is returned for protected operations without a valid identity.
	ErrUnauthenticated = errors.New("not logged in")

	ErrConflict           = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation error")
)
