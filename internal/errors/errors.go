package errors

import (
	"errors"
	"fmt"
)

var (
	ErrorUnexpectedType    = errors.New("unexpected type")             // Static error for unexpected type.
	ErrorNotFound          = errors.New("record not found")            // Static error for a missing record.
	ErrorInvalidID         = errors.New("invalid id")                  // Static error for a malformed identifier.
	ErrorUnsupportedDriver = errors.New("unsupported database driver") // Static error for an unknown database driver.
)

// WrapUnexpectedType wraps the error for unexpected type.
func WrapUnexpectedType(expected string, actual interface{}) error {
	return fmt.Errorf("%w: expected %s, got %T", ErrorUnexpectedType, expected, actual)
}

// WrapNotFound wraps the error for a missing record of the given kind.
func WrapNotFound(kind string, id any) error {
	return fmt.Errorf("%w: %s %v", ErrorNotFound, kind, id)
}

// WrapInvalidID wraps the error for an identifier that cannot be parsed.
func WrapInvalidID(id string) error {
	return fmt.Errorf("%w: %q", ErrorInvalidID, id)
}
