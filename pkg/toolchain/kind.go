// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"fmt"
)

const (
	// Node is the JavaScript runtime that anchors a selection.
	Node Kind = "node"
	// Npm is the package manager bundled with Node.
	Npm Kind = "npm"
	// Yarn is an independently installed package manager.
	Yarn Kind = "yarn"
)

var (
	// ErrInvalidKind is returned when a Kind value is not recognized.
	ErrInvalidKind = errors.New("invalid tool kind")
	// ErrInvalidPackageManagerKind is returned when a Kind does not name a package manager.
	ErrInvalidPackageManagerKind = errors.New("invalid package manager kind")
)

type (
	// Kind names a managed tool.
	Kind string

	// InvalidKindError is returned when a Kind value is not recognized.
	// It wraps ErrInvalidKind for errors.Is() compatibility.
	InvalidKindError struct {
		Value Kind
	}

	// InvalidPackageManagerKindError is returned when a package manager was
	// expected but Value names another tool.
	InvalidPackageManagerKindError struct {
		Value Kind
	}
)

// Kinds returns all managed tools, runtime first.
func Kinds() []Kind {
	return []Kind{Node, Npm, Yarn}
}

// ParseKind validates s as a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if valid, errs := k.IsValid(); !valid {
		return "", errs[0]
	}
	return k, nil
}

// ParsePackageManagerKind validates s as a package manager Kind (npm or yarn).
func ParsePackageManagerKind(s string) (Kind, error) {
	k, err := ParseKind(s)
	if err != nil {
		return "", err
	}
	if !k.IsPackageManager() {
		return "", &InvalidPackageManagerKindError{Value: k}
	}
	return k, nil
}

// String returns the string representation of the Kind.
func (k Kind) String() string { return string(k) }

// IsValid returns whether the Kind is a managed tool.
func (k Kind) IsValid() (bool, []error) {
	switch k {
	case Node, Npm, Yarn:
		return true, nil
	default:
		return false, []error{&InvalidKindError{Value: k}}
	}
}

// IsPackageManager reports whether the Kind is a companion package manager.
func (k Kind) IsPackageManager() bool {
	return k == Npm || k == Yarn
}

// Error implements the error interface for InvalidKindError.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid tool kind %q (expected one of: node, npm, yarn)", e.Value)
}

// Unwrap returns ErrInvalidKind for errors.Is() compatibility.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }

// Error implements the error interface for InvalidPackageManagerKindError.
func (e *InvalidPackageManagerKindError) Error() string {
	return fmt.Sprintf("%q is not a package manager (expected npm or yarn)", e.Value)
}

// Unwrap returns ErrInvalidPackageManagerKind for errors.Is() compatibility.
func (e *InvalidPackageManagerKindError) Unwrap() error { return ErrInvalidPackageManagerKind }
