package domain

import "errors"

// Sentinel errors. The tracker itself never fails; these are returned at the
// boundaries where boxed keys and values are converted into typed ones.
var (
	ErrKeyType         = errors.New("key has the wrong type for this table")
	ErrValueType       = errors.New("value has the wrong type for this table")
	ErrUnknownProperty = errors.New("unknown property")
	ErrPropertyType    = errors.New("property value has the wrong type")
)
