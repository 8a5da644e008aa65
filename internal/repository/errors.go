package repository

import "errors"

// ErrNotFound is returned when an operation targets a row that does not
// exist. Callers surface it directly rather than swallowing it.
var ErrNotFound = errors.New("record not found")
