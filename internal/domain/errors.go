package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common failures when talking to the practice API.
var (
	ErrInvalidCredentials = errors.New("invalid credentials provided")
	ErrNotFound           = errors.New("requested resource not found")
	ErrEmptyResponse      = errors.New("no data received from the server")
)
