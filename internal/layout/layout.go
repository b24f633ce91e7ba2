// SPDX-License-Identifier: MPL-2.0

// Package layout maps managed tools and versions to their directories under
// the nodepin home.
//
// The home directory is laid out as:
//
//	<home>/bin                                  manager executables
//	<home>/shim                                 shims dispatching to the active toolchain
//	<home>/tools/image/<tool>/<version>[/bin]   unpacked toolchain images
//	<home>/tools/inventory/node/node-v<v>-npm   npm version bundled with a Node release
package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/nodepin/nodepin/pkg/platform"
	"github.com/nodepin/nodepin/pkg/toolchain"
)

const (
	// HomeEnvVar overrides the location of the nodepin home.
	HomeEnvVar = "NODEPIN_HOME"
	// DefaultHomeDirName is the home directory name under the user's home.
	DefaultHomeDirName = ".nodepin"
)

// ErrLayoutUnavailable is the sentinel error wrapped by UnavailableError.
var ErrLayoutUnavailable = errors.New("nodepin home unavailable")

type (
	// Home is a located nodepin home directory.
	Home struct {
		root string
		goos string
	}

	// LocateOptions controls how Locate finds the home directory.
	LocateOptions struct {
		// Root forces the home directory when set.
		Root string
		// LookupEnv reads environment variables. When nil, os.LookupEnv is used.
		LookupEnv func(string) (string, bool)
		// UserHomeDir returns the user's home directory. When nil, os.UserHomeDir is used.
		UserHomeDir func() (string, error)
	}

	// UnavailableError is returned when the home directory, or a directory
	// inside it, cannot be determined. Tool and Version are set when the
	// failure happened while resolving a specific tool directory.
	UnavailableError struct {
		Tool    toolchain.Kind
		Version string
		Cause   error
	}
)

// Locate finds the nodepin home. Precedence: opts.Root, then $NODEPIN_HOME,
// then ~/.nodepin.
func Locate(opts LocateOptions) (*Home, error) {
	if opts.Root != "" {
		return NewHome(opts.Root), nil
	}

	lookupEnv := opts.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if root, ok := lookupEnv(HomeEnvVar); ok && root != "" {
		return NewHome(root), nil
	}

	userHomeDir := opts.UserHomeDir
	if userHomeDir == nil {
		userHomeDir = os.UserHomeDir
	}
	userHome, err := userHomeDir()
	if err != nil {
		return nil, &UnavailableError{Cause: fmt.Errorf("failed to get home directory: %w", err)}
	}
	if userHome == "" {
		return nil, &UnavailableError{Cause: errors.New("home directory is empty")}
	}

	return NewHome(filepath.Join(userHome, DefaultHomeDirName)), nil
}

// NewHome returns a Home rooted at root for the current platform.
func NewHome(root string) *Home {
	return newHomeFor(root, runtime.GOOS)
}

func newHomeFor(root, goos string) *Home {
	return &Home{root: filepath.Clean(root), goos: goos}
}

// Root returns the home directory.
func (h *Home) Root() string { return h.root }

// BinDir returns the directory holding nodepin's own executables.
func (h *Home) BinDir() string { return filepath.Join(h.root, "bin") }

// ShimDir returns the directory holding tool shims.
func (h *Home) ShimDir() string { return filepath.Join(h.root, "shim") }

// ImageDir returns the unpacked image directory of a tool version.
func (h *Home) ImageDir(tool toolchain.Kind, version string) string {
	return filepath.Join(h.root, "tools", "image", string(tool), version)
}

// NodeImageBinDir returns the directory holding the node executable of a version.
// Windows Node distributions keep executables at the image root.
func (h *Home) NodeImageBinDir(version string) string {
	if h.goos == platform.Windows {
		return h.ImageDir(toolchain.Node, version)
	}
	return filepath.Join(h.ImageDir(toolchain.Node, version), "bin")
}

// NpmImageBinDir returns the bin directory of a custom npm version.
func (h *Home) NpmImageBinDir(version string) string {
	return filepath.Join(h.ImageDir(toolchain.Npm, version), "bin")
}

// YarnImageBinDir returns the bin directory of a Yarn version.
func (h *Home) YarnImageBinDir(version string) string {
	return filepath.Join(h.ImageDir(toolchain.Yarn, version), "bin")
}

// NodeBundledNpmPackageJSON returns the package.json of the npm shipped inside a Node image.
func (h *Home) NodeBundledNpmPackageJSON(version string) string {
	image := h.ImageDir(toolchain.Node, version)
	if h.goos == platform.Windows {
		return filepath.Join(image, "node_modules", "npm", "package.json")
	}
	return filepath.Join(image, "lib", "node_modules", "npm", "package.json")
}

// NodeInventoryDir returns the directory of Node release records.
func (h *Home) NodeInventoryDir() string {
	return filepath.Join(h.root, "tools", "inventory", "node")
}

// NodeNpmVersionFile returns the record of the npm version bundled with a Node version.
func (h *Home) NodeNpmVersionFile(version string) string {
	return filepath.Join(h.NodeInventoryDir(), fmt.Sprintf("node-v%s-npm", version))
}

// ToolBinDir resolves the bin directory of a tool version.
func (h *Home) ToolBinDir(tool toolchain.Kind, version string) (string, error) {
	if version == "" {
		return "", &UnavailableError{Tool: tool, Cause: errors.New("empty version")}
	}
	switch tool {
	case toolchain.Node:
		return h.NodeImageBinDir(version), nil
	case toolchain.Npm:
		return h.NpmImageBinDir(version), nil
	case toolchain.Yarn:
		return h.YarnImageBinDir(version), nil
	default:
		return "", &UnavailableError{Tool: tool, Version: version, Cause: &toolchain.InvalidKindError{Value: tool}}
	}
}

// PurgeTargets returns the manager-owned directories that must not stay on
// PATH once a toolchain image is active. On Windows the installer also puts
// the manager bin directory on PATH, so it is purged too.
func (h *Home) PurgeTargets() ([]string, error) {
	if h.goos == platform.Windows {
		return []string{h.ShimDir(), h.BinDir()}, nil
	}
	return []string{h.ShimDir()}, nil
}

// Error implements the error interface for UnavailableError.
func (e *UnavailableError) Error() string {
	msg := ErrLayoutUnavailable.Error()
	if e.Tool != "" {
		msg = fmt.Sprintf("%s: cannot resolve %s", msg, e.Tool)
		if e.Version != "" {
			msg += "@" + e.Version
		}
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns ErrLayoutUnavailable and the cause for errors.Is() compatibility.
func (e *UnavailableError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrLayoutUnavailable}
	}
	return []error{ErrLayoutUnavailable, e.Cause}
}
