package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrBookNotFound and ErrTransactionNotFound specialise ErrNotFound so callers
// can tell which of the two records in a commit's write set vanished.
// Both match errors.Is(err, ErrNotFound).
var (
	ErrBookNotFound        = fmt.Errorf("book: %w", ErrNotFound)
	ErrTransactionNotFound = fmt.Errorf("transaction: %w", ErrNotFound)
)

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates an atomic commit kept colliding with concurrent
// commits against the same book and the bounded retry budget ran out.
// The caller may retry the whole operation.
var ErrConflict = errors.New("commit conflict")

// ErrStoreUnavailable indicates an I/O failure of the underlying store.
// Atomicity still holds: nothing was committed.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")
