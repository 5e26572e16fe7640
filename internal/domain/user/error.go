package user

import (
	"errors"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrInvalidAuth = errors.New("invalid authentication token")
)
