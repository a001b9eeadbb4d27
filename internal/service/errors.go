package service

import "errors"

// Sentinel errors returned by the services. Controllers map these onto
// HTTP status codes with errors.Is.
var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrPasswordNeedsDigit = errors.New("password must contain at least one digit")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidStatus      = errors.New("invalid status")
)
