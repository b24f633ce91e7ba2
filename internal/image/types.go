// SPDX-License-Identifier: MPL-2.0

package image

import (
	"errors"
	"fmt"

	"github.com/nodepin/nodepin/pkg/sourced"
	"github.com/nodepin/nodepin/pkg/toolchain"
)

const (
	// PathModeStandard removes nodepin-owned directories from PATH before
	// prefixing the image's bin directories.
	PathModeStandard PathMode = "standard"
	// PathModeGlobalPackage keeps PATH untouched apart from the prefix. It is
	// used when nodepin runs as a globally installed package whose own
	// directories must stay reachable.
	PathModeGlobalPackage PathMode = "global-package"
)

var (
	// ErrMissingRuntime is returned by New when the selection has no Node version.
	ErrMissingRuntime = errors.New("selection has no node version")
	// ErrInvalidPathMode is the sentinel error wrapped by InvalidPathModeError.
	ErrInvalidPathMode = errors.New("invalid path mode")
	// ErrPathBuild is the sentinel error wrapped by PathBuildError.
	ErrPathBuild = errors.New("failed to build PATH")
	// ErrDefaultVersionLookup is the sentinel error wrapped by DefaultVersionLookupError.
	ErrDefaultVersionLookup = errors.New("failed to look up default version")
	// ErrNoDefaultVersionLookup is reported when an Image has no lookup for
	// bundled versions and a package manager was not pinned.
	ErrNoDefaultVersionLookup = errors.New("no bundled version lookup configured")
)

type (
	// Version is a tagged toolchain version.
	Version = sourced.Sourced[toolchain.Version]

	// PathMode selects how Path treats the existing PATH entries.
	PathMode string

	// InvalidPathModeError is returned when a PathMode value is not recognized.
	InvalidPathModeError struct {
		Value PathMode
	}

	// Selection is a resolved toolchain: a required Node version and optional
	// npm and Yarn pins. A nil Npm means "use the npm bundled with Node";
	// a nil Yarn means Yarn is not selected.
	Selection struct {
		Node Version
		Npm  *Version
		Yarn *Version
	}

	// BinDirResolver maps a tool and version string to its bin directory.
	BinDirResolver interface {
		ToolBinDir(tool toolchain.Kind, version string) (string, error)
	}

	// PurgeTargetProvider lists the manager-owned directories to strip from PATH.
	PurgeTargetProvider interface {
		PurgeTargets() ([]string, error)
	}

	// Layout is the directory service an Image derives paths from.
	Layout interface {
		BinDirResolver
		PurgeTargetProvider
	}

	// DefaultVersionLookup reports the version of a package manager bundled
	// with a Node release.
	DefaultVersionLookup interface {
		DefaultVersion(node toolchain.Version, tool toolchain.Kind) (toolchain.Version, error)
	}

	// PathBuildError is returned when the derived directory list cannot be
	// encoded as a PATH value. Dirs holds the image bin directories that were
	// being prefixed.
	PathBuildError struct {
		Dirs  []string
		Cause error
	}

	// DefaultVersionLookupError is returned when a package manager has no pin
	// and the version bundled with Node could not be determined.
	DefaultVersionLookupError struct {
		Tool  toolchain.Kind
		Node  toolchain.Version
		Cause error
	}
)

// ParsePathMode validates s as a PathMode.
func ParsePathMode(s string) (PathMode, error) {
	m := PathMode(s)
	if valid, errs := m.IsValid(); !valid {
		return "", errs[0]
	}
	return m, nil
}

// String returns the string representation of the PathMode.
func (m PathMode) String() string { return string(m) }

// IsValid returns whether the PathMode is one of the defined modes.
func (m PathMode) IsValid() (bool, []error) {
	switch m {
	case PathModeStandard, PathModeGlobalPackage:
		return true, nil
	default:
		return false, []error{&InvalidPathModeError{Value: m}}
	}
}

// Error implements the error interface for InvalidPathModeError.
func (e *InvalidPathModeError) Error() string {
	return fmt.Sprintf("invalid path mode %q (expected %s or %s)", e.Value, PathModeStandard, PathModeGlobalPackage)
}

// Unwrap returns ErrInvalidPathMode for errors.Is() compatibility.
func (e *InvalidPathModeError) Unwrap() error { return ErrInvalidPathMode }

// Error implements the error interface for PathBuildError.
func (e *PathBuildError) Error() string {
	return fmt.Sprintf("%s with image directories %v: %v", ErrPathBuild, e.Dirs, e.Cause)
}

// Unwrap returns ErrPathBuild and the cause for errors.Is() compatibility.
func (e *PathBuildError) Unwrap() []error { return []error{ErrPathBuild, e.Cause} }

// Error implements the error interface for DefaultVersionLookupError.
func (e *DefaultVersionLookupError) Error() string {
	return fmt.Sprintf("failed to determine the %s version bundled with node %s: %v", e.Tool, e.Node, e.Cause)
}

// Unwrap returns ErrDefaultVersionLookup and the cause for errors.Is() compatibility.
func (e *DefaultVersionLookupError) Unwrap() []error {
	return []error{ErrDefaultVersionLookup, e.Cause}
}

func cloneVersion(v *Version) *Version {
	if v == nil {
		return nil
	}
	c := v.Clone()
	return &c
}

func (s Selection) clone() Selection {
	return Selection{
		Node: s.Node.Clone(),
		Npm:  cloneVersion(s.Npm),
		Yarn: cloneVersion(s.Yarn),
	}
}
