// Degradations are handled through the Warnings accumulator; the types
// here are the hard-failure tier that aborts a conversion with no output
// written.

package mdocx

import "fmt"

// InputError reports unreadable or non-UTF-8 source input.
type InputError struct {
	Path  string
	Cause error
}

func (e *InputError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("input error reading '%s': %v", e.Path, e.Cause)
	}
	if e.Cause != nil {
		return fmt.Sprintf("input error: %v", e.Cause)
	}
	return fmt.Sprintf("input error reading '%s'", e.Path)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// NewInputError creates a new input error.
func NewInputError(path string, cause error) error {
	return &InputError{Path: path, Cause: cause}
}

// PackageError reports an internal invariant violation detected while
// assembling the output package: a referenced relationship identifier that
// does not resolve, a duplicate identifier, or a duplicate content-type
// entry. These are defects, not user-facing input errors.
type PackageError struct {
	Part    string
	Message string
}

func (e *PackageError) Error() string {
	if e.Part != "" {
		return fmt.Sprintf("package invariant violation in %s: %s", e.Part, e.Message)
	}
	return fmt.Sprintf("package invariant violation: %s", e.Message)
}

// NewPackageError creates a new package invariant error.
func NewPackageError(part, format string, args ...interface{}) error {
	return &PackageError{Part: part, Message: fmt.Sprintf(format, args...)}
}

// WriteError reports a failure writing the destination archive.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write error for '%s': %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// NewWriteError creates a new destination write error.
func NewWriteError(path string, cause error) error {
	return &WriteError{Path: path, Cause: cause}
}

// IsInputError checks if an error is an input error.
func IsInputError(err error) bool {
	_, ok := err.(*InputError)
	return ok
}

// IsPackageError checks if an error is a package invariant error.
func IsPackageError(err error) bool {
	_, ok := err.(*PackageError)
	return ok
}

// IsWriteError checks if an error is a destination write error.
func IsWriteError(err error) bool {
	_, ok := err.(*WriteError)
	return ok
}
