package schema

import (
	"errors"
)

var (
	ErrTypeNotFound   = errors.New("credential type not found")
	ErrCyclicExtends  = errors.New("cyclic extends chain in credential type")
	ErrInvalidTypeDef = errors.New("invalid credential type definition")
)
