package models

import "errors"

// Domain specific errors shared across services and handlers.
var (
	ErrNotFound        = errors.New("requested item not found")
	ErrConflict        = errors.New("item already exists or conflict")
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
	ErrForbidden       = errors.New("action forbidden")
	ErrBadRequest      = errors.New("bad request")
	ErrValidation      = errors.New("validation failed")

	// Generation provider taxonomy. Unavailable covers an unreachable or
	// unconfigured provider; InvalidResponse covers a reply that does not
	// conform to the expected shape.
	ErrGenerationUnavailable     = errors.New("generation provider unavailable or unconfigured")
	ErrGenerationInvalidResponse = errors.New("generation provider returned a malformed response")

	// ErrProviderUnavailable is the auth collaborator counterpart of
	// ErrGenerationUnavailable.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)
