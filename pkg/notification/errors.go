package notification

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned for index or range arguments outside the collection.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrKeyExists is returned when adding a key that is already in a dictionary.
	ErrKeyExists = errors.New("key already exists")
	// ErrKeyNotFound is returned when looking up a key that is not in a dictionary.
	ErrKeyNotFound = errors.New("key not found")
)

// CollectionError describes a rejected collection operation.
type CollectionError struct {
	Op      string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *CollectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the cause so that errors.Is matches the sentinel errors.
func (e *CollectionError) Unwrap() error { return e.Cause }

// NewIndexError returns an error for an index or range outside a collection of the given size.
func NewIndexError(op string, index, count, size int) error {
	msg := fmt.Sprintf("index %d (count %d) outside [0,%d]", index, count, size)
	return &CollectionError{Op: op, Message: msg, Cause: ErrIndexOutOfRange}
}

func newKeyExistsError(op string, key any) error {
	return &CollectionError{Op: op, Message: fmt.Sprintf("key %v", key), Cause: ErrKeyExists}
}

// NewKeyNotFoundError returns an error for a failed dictionary lookup.
func NewKeyNotFoundError(op string, key any) error {
	return &CollectionError{Op: op, Message: fmt.Sprintf("key %v", key), Cause: ErrKeyNotFound}
}

// checkRange validates that [index, index+count) lies within a collection of the given size.
func checkRange(op string, index, count, size int) error {
	if index < 0 || count < 0 || index > size || count > size-index {
		return NewIndexError(op, index, count, size)
	}
	return nil
}
