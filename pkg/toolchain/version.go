// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrInvalidVersion is the sentinel error wrapped by InvalidVersionError.
var ErrInvalidVersion = errors.New("invalid version")

type (
	// Version is a full semantic version (major.minor.patch with optional
	// pre-release and build metadata) stored without a leading "v".
	// The zero value is not a valid version.
	Version struct {
		raw string
	}

	// InvalidVersionError is returned when a string is not a full semantic version.
	InvalidVersionError struct {
		Value string
	}
)

// ParseVersion parses a semantic version. A leading "v" is accepted and
// dropped. Shorthand forms such as "18" or "18.0" are rejected because
// install directories are always named by the full version.
func ParseVersion(s string) (Version, error) {
	trimmed := strings.TrimSpace(s)
	bare := strings.TrimPrefix(trimmed, "v")
	if bare == "" || !semver.IsValid("v"+bare) {
		return Version{}, &InvalidVersionError{Value: s}
	}

	core, _, _ := strings.Cut(bare, "+")
	core, _, _ = strings.Cut(core, "-")
	if strings.Count(core, ".") != 2 {
		return Version{}, &InvalidVersionError{Value: s}
	}

	return Version{raw: bare}, nil
}

// MustParseVersion is like ParseVersion but panics on error.
// It is intended for tests and constant tables.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version without a leading "v" (e.g. "18.0.0").
func (v Version) String() string { return v.raw }

// IsZero reports whether v is the zero Version.
func (v Version) IsZero() bool { return v.raw == "" }

// Equal reports whether v and other are the same version string.
func (v Version) Equal(other Version) bool { return v.raw == other.raw }

// Compare returns -1, 0 or +1 by semantic version precedence.
// Build metadata does not affect precedence.
func (v Version) Compare(other Version) int {
	return semver.Compare("v"+v.raw, "v"+other.raw)
}

// Prerelease returns the pre-release suffix including the leading "-", or "".
func (v Version) Prerelease() string {
	return semver.Prerelease("v" + v.raw)
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.raw), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Error implements the error interface for InvalidVersionError.
func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q: must be a full semantic version such as 18.0.0", e.Value)
}

// Unwrap returns ErrInvalidVersion for errors.Is() compatibility.
func (e *InvalidVersionError) Unwrap() error { return ErrInvalidVersion }
