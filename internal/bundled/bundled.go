// SPDX-License-Identifier: MPL-2.0

// Package bundled looks up the package manager versions that ship inside a
// Node release.
//
// Every Node distribution carries a copy of npm. When a Node version is
// fetched, its npm version is recorded in the inventory
// (tools/inventory/node/node-v<version>-npm); if that record is missing the
// lookup falls back to the package.json of the npm unpacked inside the Node
// image. Yarn is never bundled.
package bundled

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/nodepin/nodepin/internal/layout"
	"github.com/nodepin/nodepin/pkg/toolchain"
)

// ErrBundledVersionNotFound is the sentinel error wrapped by NotFoundError.
var ErrBundledVersionNotFound = errors.New("bundled version not found")

type (
	// Paths is the subset of the layout that InventoryLookup reads.
	Paths interface {
		NodeNpmVersionFile(version string) string
		NodeBundledNpmPackageJSON(version string) string
	}

	// InventoryLookup reads bundled versions from the nodepin home.
	InventoryLookup struct {
		paths Paths
	}

	// NotFoundError is returned when no bundled version is known for a Node
	// version. Searched lists the files that were consulted.
	NotFoundError struct {
		Tool     toolchain.Kind
		Node     toolchain.Version
		Searched []string
	}

	packageManifest struct {
		Version string `json:"version"`
	}
)

// NewInventoryLookup creates a lookup over the given layout.
func NewInventoryLookup(paths Paths) *InventoryLookup {
	return &InventoryLookup{paths: paths}
}

// compile-time check
var _ Paths = (*layout.Home)(nil)

// DefaultVersion returns the version of tool bundled with the node release.
func (l *InventoryLookup) DefaultVersion(node toolchain.Version, tool toolchain.Kind) (toolchain.Version, error) {
	if tool != toolchain.Npm {
		return toolchain.Version{}, &NotFoundError{Tool: tool, Node: node}
	}

	record := l.paths.NodeNpmVersionFile(node.String())
	v, err := readVersionRecord(record)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return toolchain.Version{}, err
	}
	slog.Debug("bundled npm record missing, reading npm manifest from node image", "node", node.String(), "record", record)

	manifest := l.paths.NodeBundledNpmPackageJSON(node.String())
	v, err = readPackageManifestVersion(manifest)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return toolchain.Version{}, err
	}

	return toolchain.Version{}, &NotFoundError{Tool: tool, Node: node, Searched: []string{record, manifest}}
}

func readVersionRecord(path string) (toolchain.Version, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return toolchain.Version{}, err
	}
	v, err := toolchain.ParseVersion(strings.TrimSpace(string(data)))
	if err != nil {
		return toolchain.Version{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func readPackageManifestVersion(path string) (toolchain.Version, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return toolchain.Version{}, err
	}
	var manifest packageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return toolchain.Version{}, fmt.Errorf("%s: failed to parse package manifest: %w", path, err)
	}
	v, err := toolchain.ParseVersion(manifest.Version)
	if err != nil {
		return toolchain.Version{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	if e.Tool != toolchain.Npm {
		return fmt.Sprintf("%s is not bundled with node %s", e.Tool, e.Node)
	}
	if len(e.Searched) == 0 {
		return fmt.Sprintf("no bundled %s version recorded for node %s", e.Tool, e.Node)
	}
	return fmt.Sprintf("no bundled %s version recorded for node %s (searched %s)", e.Tool, e.Node, strings.Join(e.Searched, ", "))
}

// Unwrap returns ErrBundledVersionNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrBundledVersionNotFound }
