package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Moderation errors
	ErrInvalidAction  = errors.New("invalid moderation action")
	ErrReasonRequired = errors.New("reason is required")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// HTTPStatus maps a business error to its HTTP status code.
// Unknown errors are treated as upstream failures (500).
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		return 404
	case errors.Is(err, ErrInvalidAction), errors.Is(err, ErrReasonRequired),
		errors.Is(err, ErrInvalidInput):
		return 400
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken), errors.Is(err, ErrExpiredToken):
		return 401
	case errors.Is(err, ErrForbidden):
		return 403
	case errors.Is(err, ErrUserAlreadyExists):
		return 409
	default:
		return 500
	}
}
