package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptStore marks persisted data that exists but cannot be decoded.
	ErrCorruptStore = errors.New("snippet store is corrupt")
	// ErrEmptyStore is returned by Pop when the collection holds no snippets.
	ErrEmptyStore = errors.New("snippet store is empty")
	// ErrIO marks failures reading or writing the persistence layer.
	ErrIO = errors.New("snippet store i/o failure")
	// ErrConflict is returned when the backing document changed between load and save.
	ErrConflict = errors.New("snippet store modified by another process")
	// ErrInvalidSnippet is returned when add input fails validation.
	ErrInvalidSnippet = errors.New("invalid snippet")
)

// ErrNotFound is returned when no snippet carries the requested id.
type ErrNotFound struct {
	ID int
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("snippet with ID %d not found", e.ID)
}

// CorruptStoreError names the source that failed to decode so users can fix or delete it.
type CorruptStoreError struct {
	Source string
	Err    error
}

func (e *CorruptStoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", ErrCorruptStore, e.Source)
	}
	return fmt.Sprintf("%v: %s: %v", ErrCorruptStore, e.Source, e.Err)
}

func (e *CorruptStoreError) Unwrap() error { return e.Err }

// Is reports ErrCorruptStore equivalence for errors.Is.
func (e *CorruptStoreError) Is(target error) bool { return target == ErrCorruptStore }

// IOError wraps an underlying filesystem or database failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is reports ErrIO equivalence for errors.Is.
func (e *IOError) Is(target error) bool { return target == ErrIO }

// IsNotFound reports whether err carries an ErrNotFound.
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}
