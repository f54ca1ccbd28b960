package generator

import "errors"

var (
	ErrUnknownStrategy = errors.New("unknown generator strategy")
	ErrInvalidOptions  = errors.New("invalid generator options")
)
