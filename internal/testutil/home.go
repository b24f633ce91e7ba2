// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/nodepin/nodepin/pkg/platform"
)

// FakeHome is a throwaway nodepin home with toolchain images on disk.
type FakeHome struct {
	Root string
}

// NewFakeHome creates an empty nodepin home under t.TempDir().
func NewFakeHome(t testing.TB) *FakeHome {
	t.Helper()
	root := filepath.Join(t.TempDir(), ".nodepin")
	MustMkdirAll(t, filepath.Join(root, "shim"), 0o755)
	return &FakeHome{Root: root}
}

// InstallImage creates the bin directory of a tool version and places an
// executable stub named after the tool inside it. It returns the bin directory.
func (h *FakeHome) InstallImage(t testing.TB, tool, version string) string {
	t.Helper()
	image := filepath.Join(h.Root, "tools", "image", tool, version)
	bin := filepath.Join(image, "bin")
	if runtime.GOOS == platform.Windows && tool == "node" {
		bin = image
	}
	MustMkdirAll(t, bin, 0o755)

	stub := filepath.Join(bin, platform.ExecutableName(runtime.GOOS, tool))
	if err := os.WriteFile(stub, []byte("#!/bin/sh\necho "+tool+" "+version+"\n"), 0o755); err != nil {
		t.Fatalf("failed to write stub %s: %v", stub, err)
	}
	return bin
}

// RecordBundledNpm writes the inventory record of the npm version shipped with a Node version.
func (h *FakeHome) RecordBundledNpm(t testing.TB, node, npm string) {
	t.Helper()
	MustWriteFile(t, filepath.Join(h.Root, "tools", "inventory", "node", "node-v"+node+"-npm"), npm+"\n")
}
