package errors

import (
	"fmt"
)

// ParseError represents a fixture or preference parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures malformed user input such as a non-numeric bound or an
// inverted range. The rejected operation leaves prior state untouched.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StoreError represents a connectivity or query failure in the catalog store.
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError constructs a StoreError for the named operation.
func NewStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	if e == nil {
		return ""
	}
	if e.Op != "" {
		return fmt.Sprintf("store error during %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *StoreError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RegistryInconsistency reports a themed control whose handle no longer refers to a
// live control. It is recovered locally by pruning and never surfaced to the user.
type RegistryInconsistency struct {
	Kind       string
	Slot       int
	Generation uint32
}

// NewRegistryInconsistency constructs a RegistryInconsistency.
func NewRegistryInconsistency(kind string, slot int, generation uint32) error {
	return &RegistryInconsistency{Kind: kind, Slot: slot, Generation: generation}
}

func (e *RegistryInconsistency) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("stale %s handle (slot %d, generation %d)", e.Kind, e.Slot, e.Generation)
}

// PersistenceWriteFailure indicates a preference or marker file could not be written.
// Callers log it and continue with in-memory state.
type PersistenceWriteFailure struct {
	Path string
	Key  string
	Err  error
}

// NewPersistenceWriteFailure constructs a PersistenceWriteFailure.
func NewPersistenceWriteFailure(path, key string, err error) error {
	return &PersistenceWriteFailure{Path: path, Key: key, Err: err}
}

func (e *PersistenceWriteFailure) Error() string {
	if e == nil {
		return ""
	}
	if e.Key != "" {
		return fmt.Sprintf("persist %q to %s: %v", e.Key, e.Path, e.Err)
	}
	return fmt.Sprintf("persist to %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying error.
func (e *PersistenceWriteFailure) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
