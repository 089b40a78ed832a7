package authz

import "errors"

var (
	// ErrMissingCredential is returned when no claim set is presented.
	ErrMissingCredential = errors.New("missing credential")

	// ErrInvalidCredential is returned when the claim set fails verification
	// or is structurally malformed.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrForbidden is returned when the principal's role does not permit the
	// requested operation.
	ErrForbidden = errors.New("operation forbidden")
)
