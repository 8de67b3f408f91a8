package service

import "errors"

// Failure taxonomy surfaced to callers. Handlers map these onto HTTP
// status codes; joined causes stay inspectable via errors.Is.
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("video not found")
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrValidation      = errors.New("invalid request")
	ErrExternalService = errors.New("external service failure")

	// ErrPartialFailure marks a two-phase operation that completed one
	// leg and failed the other. The reconcile worker finishes the rest.
	ErrPartialFailure = errors.New("partial failure")
)
