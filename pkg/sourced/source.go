// SPDX-License-Identifier: MPL-2.0

package sourced

import (
	"errors"
	"fmt"
)

const (
	// Default marks a value taken from the user's default toolchain.
	Default Source = iota
	// Project marks a value pinned in a project manifest.
	Project
	// Binary marks a value pinned by the package that provides a binary.
	Binary
	// CommandLine marks a value given explicitly on the command line.
	CommandLine
)

// ErrInvalidSource is the sentinel error wrapped by InvalidSourceError.
var ErrInvalidSource = errors.New("invalid source")

type (
	// Source identifies the origin of a resolved selection.
	Source int

	// InvalidSourceError is returned when a Source value or its textual form
	// is not recognized. It wraps ErrInvalidSource for errors.Is() compatibility.
	InvalidSourceError struct {
		Value string
	}
)

var sourceNames = [...]string{
	Default:     "default",
	Project:     "project",
	Binary:      "binary",
	CommandLine: "command-line",
}

// ParseSource converts the textual form of a Source ("default", "project",
// "binary", "command-line") into its value.
func ParseSource(s string) (Source, error) {
	for i, name := range sourceNames {
		if name == s {
			return Source(i), nil
		}
	}
	return Default, &InvalidSourceError{Value: s}
}

// String returns the textual form of the Source.
func (s Source) String() string {
	if s < 0 || int(s) >= len(sourceNames) {
		return fmt.Sprintf("source(%d)", int(s))
	}
	return sourceNames[s]
}

// IsValid returns whether the Source is one of the known origins.
func (s Source) IsValid() (bool, []error) {
	if s < 0 || int(s) >= len(sourceNames) {
		return false, []error{&InvalidSourceError{Value: s.String()}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSourceError.
func (e *InvalidSourceError) Error() string {
	return fmt.Sprintf("invalid source %q (expected one of: default, project, binary, command-line)", e.Value)
}

// Unwrap returns ErrInvalidSource for errors.Is() compatibility.
func (e *InvalidSourceError) Unwrap() error { return ErrInvalidSource }
