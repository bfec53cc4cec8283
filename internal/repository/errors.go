package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by keyed lookups when no row matches.
var ErrNotFound = errors.New("not found")

// StoreError wraps any transport or query failure from the datastore.
// Handlers map it to an external status without ever exposing the driver
// text; Op lets logs and metrics keep the failing operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsStoreError reports whether err is (or wraps) a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
