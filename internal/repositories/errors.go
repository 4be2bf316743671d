package repositories

import "errors"

// ErrNotFound is wrapped by every repository when a referenced record does
// not exist, so callers can branch with errors.Is instead of string matching.
var ErrNotFound = errors.New("record not found")
