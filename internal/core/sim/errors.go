package sim

import "errors"

var (
	ErrInvalidState = errors.New("operation not allowed in current state")
	ErrNoLevel      = errors.New("no level generated")
)
