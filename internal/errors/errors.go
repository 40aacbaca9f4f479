package errors

import (
	"errors"
	"fmt"
)

// Cross-cutting error types for the Mini App backend. The initdata and
// session packages own their request-level taxonomies; these sentinels cover
// everything shared between the HTTP layer and the collaborators behind it.
var (
	// Directory errors
	ErrUserNotFound = errors.New("user not found")

	// Registration errors
	ErrRegistrationNotFound = errors.New("registration not found")

	// Object store errors
	ErrObjectNotFound = errors.New("object not found")

	// Process errors
	ErrConfiguration = errors.New("configuration error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
