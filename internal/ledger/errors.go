package ledger

import (
	"errors"
	"fmt"

	"github.com/evcraddock/rent-ledger/internal/db"
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// NotFoundError reports an operation on an unknown id.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// StorageError wraps a failure from the storage layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// classify returns err unchanged when it already belongs to the ledger
// taxonomy and wraps it in a StorageError otherwise.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	var nf *NotFoundError
	var se *StorageError
	if errors.As(err, &ve) || errors.As(err, &nf) || errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// notFoundOr converts a repository not-found error into a NotFoundError.
func notFoundOr(op, kind, id string, err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return &StorageError{Op: op, Err: err}
}

// resultOf names the outcome of an operation for metrics.
func resultOf(err error) string {
	var ve *ValidationError
	var nf *NotFoundError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &ve):
		return "invalid"
	case errors.As(err, &nf):
		return "not_found"
	default:
		return "error"
	}
}
