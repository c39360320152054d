package features

import (
	"errors"
	"fmt"
)

var (
	// ErrPackageNotFound is matched by every *PackageNotFoundError.
	ErrPackageNotFound = errors.New("package not found")

	// ErrNotPrefixed is returned when inter-package dependencies are resolved
	// before package names have been bundle-prefixed. It signals a call-order
	// bug in the orchestrating code and should not be swallowed.
	ErrNotPrefixed = errors.New("packages have not yet been prefixed with a bundle name")

	// ErrConfigNotFound is returned by a ConfigStore when a name does not exist.
	ErrConfigNotFound = errors.New("configuration not found")

	// ErrUnknownProperty is returned by the strict map constructors.
	ErrUnknownProperty = errors.New("unknown property")
)

// PackageNotFoundError reports an assignment into a package that was never
// initialised.
type PackageNotFoundError struct {
	Package string
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("failed to package %s: package not found", e.Package)
}

// Is lets errors.Is(err, ErrPackageNotFound) match.
func (e *PackageNotFoundError) Is(target error) bool {
	return target == ErrPackageNotFound
}

// AssignmentError wraps a per-item failure with the item and package involved.
type AssignmentError struct {
	Item    string
	Package string
	Err     error
}

func (e *AssignmentError) Error() string {
	return fmt.Sprintf("assigning %s to %s: %v", e.Item, e.Package, e.Err)
}

func (e *AssignmentError) Unwrap() error {
	return e.Err
}
