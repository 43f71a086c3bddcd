// Package common defines sentinel errors and shared constants used by the
// tasktracker server and client. Callers should match errors with errors.Is.
package common

import "errors"

var (
	// repository errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// service errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// ErrInvalidToken is the generic credential failure. Codec errors always
	// wrap it together with one of the specific causes below.
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrTokenExpired     = errors.New("token expired")
)
