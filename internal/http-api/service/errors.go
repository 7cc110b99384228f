package service

import "errors"

// Shared error kinds; handlers map these onto HTTP statuses.
var (
	ErrNotFound   = errors.New("record not found")
	ErrForbidden  = errors.New("permission denied")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation failed")
)
