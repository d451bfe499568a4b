package types

import "errors"

// Error definitions
var (
	ErrCapacityExceeded = errors.New("leaf capacity exceeded")
	ErrInvalidInput     = errors.New("invalid input")
	ErrLeafNotFound     = errors.New("leaf not found in tree")
)
