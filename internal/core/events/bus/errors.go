package bus

import "errors"

var ErrNilHandler = errors.New("nil event handler")
