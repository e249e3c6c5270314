package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/weekly/internal/logger"
)

var (
	// ErrMissingField is wrapped by ValidationError when a required field is empty
	ErrMissingField = stderrors.New("missing required field")
	// ErrNotFound is wrapped by NotFoundError and returned by storage backends for absent keys
	ErrNotFound = stderrors.New("not found")
	// ErrInvalidFormat is wrapped by FormatError
	ErrInvalidFormat = stderrors.New("invalid format")
	// ErrPermission is wrapped by PermissionError
	ErrPermission = stderrors.New("notification permission not granted")
)

// ValidationError reports a missing or invalid user-supplied field.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Msg, e.Field)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Missing returns a ValidationError for an empty required field.
func Missing(field string) error {
	return &ValidationError{Field: field, Msg: ErrMissingField.Error(), Err: ErrMissingField}
}

// Invalid returns a ValidationError for a malformed field.
func Invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// NotFoundError reports an entry id that no longer exists in a day bucket.
type NotFoundError struct {
	Day string
	ID  string
}

func (e *NotFoundError) Error() string {
	if e.Day == "" {
		return fmt.Sprintf("entry %s not found", e.ID)
	}
	return fmt.Sprintf("entry %s not found on %s", e.ID, e.Day)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// StorageError wraps a failed read or write against the backing store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// FormatError reports a malformed or schema-invalid import payload.
type FormatError struct {
	Msg string
	Err error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid data format: %s: %v", e.Msg, e.Err)
	}
	return "invalid data format: " + e.Msg
}

func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidFormat, e.Err}
	}
	return []error{ErrInvalidFormat}
}

// PermissionError reports that notification delivery is not permitted.
type PermissionError struct {
	State string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%v (state: %s)", ErrPermission, e.State)
}

func (e *PermissionError) Unwrap() error { return ErrPermission }

// Is, As and New re-export the standard helpers so callers need a single import.
var (
	Is  = stderrors.Is
	As  = stderrors.As
	New = stderrors.New
)

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return stderrors.As(err, &v)
}

// IsNotFound reports whether err signals a missing entry or key.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}

// IsFormat reports whether err is a FormatError.
func IsFormat(err error) bool {
	return stderrors.Is(err, ErrInvalidFormat)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
