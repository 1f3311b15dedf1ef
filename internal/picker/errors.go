package picker

import "errors"

// ErrUnknownField is returned by ParseField for names that are not a field
var ErrUnknownField = errors.New("unknown field")
