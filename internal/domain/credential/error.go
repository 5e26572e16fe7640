package credential

import (
	"errors"
)

var (
	// ErrNotFound covers both a missing credential and one outside the
	// caller's visibility; the two are indistinguishable to the caller.
	ErrNotFound    = errors.New("credential not found")
	ErrForbidden   = errors.New("missing permission for credential")
	ErrBadRequest  = errors.New("invalid credential request")
	ErrInvalidData = errors.New("invalid credential data")
)
