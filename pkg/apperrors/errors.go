package apperrors

import "errors"

// Business logic errors. Handlers map these to HTTP status codes with errors.Is.
var (
	// General errors
	ErrNotFound      = errors.New("resource not found")
	ErrNotAuthorized = errors.New("not authorized")

	// Connection errors
	ErrDuplicateRequest  = errors.New("an active connection request already exists")
	ErrInvalidTransition = errors.New("request is not pending")
	ErrSelfRequest       = errors.New("cannot send a connection request to yourself")

	// Messaging errors
	ErrNotConnected = errors.New("users are not connected")
	ErrEmptyContent = errors.New("content must not be empty")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidInput       = errors.New("invalid input")
)
