package repo

import "errors"

// ErrUnsupportedValue is returned for values that have no Spanner column encoding.
var ErrUnsupportedValue = errors.New("unsupported column value")
