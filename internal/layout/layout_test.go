// SPDX-License-Identifier: MPL-2.0

package layout

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nodepin/nodepin/pkg/platform"
	"github.com/nodepin/nodepin/pkg/toolchain"
)

func noEnv(string) (string, bool) { return "", false }

func TestLocatePrecedence(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	envRoot := filepath.Join(root, "from-env")
	userHome := filepath.Join(root, "user")

	tests := []struct {
		name string
		opts LocateOptions
		want string
	}{
		{
			name: "explicit root wins",
			opts: LocateOptions{
				Root:        filepath.Join(root, "explicit"),
				LookupEnv:   func(string) (string, bool) { return envRoot, true },
				UserHomeDir: func() (string, error) { return userHome, nil },
			},
			want: filepath.Join(root, "explicit"),
		},
		{
			name: "env var over user home",
			opts: LocateOptions{
				LookupEnv: func(key string) (string, bool) {
					if key == HomeEnvVar {
						return envRoot, true
					}
					return "", false
				},
				UserHomeDir: func() (string, error) { return userHome, nil },
			},
			want: envRoot,
		},
		{
			name: "empty env var ignored",
			opts: LocateOptions{
				LookupEnv:   func(string) (string, bool) { return "", true },
				UserHomeDir: func() (string, error) { return userHome, nil },
			},
			want: filepath.Join(userHome, DefaultHomeDirName),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			home, err := Locate(tt.opts)
			if err != nil {
				t.Fatalf("Locate() error: %v", err)
			}
			if home.Root() != tt.want {
				t.Errorf("Root() = %q, want %q", home.Root(), tt.want)
			}
		})
	}
}

func TestLocateUnavailable(t *testing.T) {
	t.Parallel()

	cause := errors.New("no passwd entry")
	_, err := Locate(LocateOptions{
		LookupEnv:   noEnv,
		UserHomeDir: func() (string, error) { return "", cause },
	})
	if !errors.Is(err, ErrLayoutUnavailable) {
		t.Fatalf("Locate() error = %v, want ErrLayoutUnavailable", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Locate() error does not wrap cause: %v", err)
	}

	_, err = Locate(LocateOptions{
		LookupEnv:   noEnv,
		UserHomeDir: func() (string, error) { return "", nil },
	})
	if !errors.Is(err, ErrLayoutUnavailable) {
		t.Errorf("Locate() with empty home error = %v, want ErrLayoutUnavailable", err)
	}
}

func TestToolBinDirUnix(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/home/u/.nodepin")
	home := newHomeFor(root, platform.Linux)

	tests := []struct {
		tool    toolchain.Kind
		version string
		want    string
	}{
		{tool: toolchain.Node, version: "18.0.0", want: filepath.Join(root, "tools", "image", "node", "18.0.0", "bin")},
		{tool: toolchain.Npm, version: "9.8.1", want: filepath.Join(root, "tools", "image", "npm", "9.8.1", "bin")},
		{tool: toolchain.Yarn, version: "1.22.0", want: filepath.Join(root, "tools", "image", "yarn", "1.22.0", "bin")},
	}

	for _, tt := range tests {
		got, err := home.ToolBinDir(tt.tool, tt.version)
		if err != nil {
			t.Fatalf("ToolBinDir(%s, %s) error: %v", tt.tool, tt.version, err)
		}
		if got != tt.want {
			t.Errorf("ToolBinDir(%s, %s) = %q, want %q", tt.tool, tt.version, got, tt.want)
		}
	}
}

func TestToolBinDirWindowsNode(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/users/u/nodepin")
	home := newHomeFor(root, platform.Windows)

	got, err := home.ToolBinDir(toolchain.Node, "20.11.1")
	if err != nil {
		t.Fatalf("ToolBinDir() error: %v", err)
	}
	if want := filepath.Join(root, "tools", "image", "node", "20.11.1"); got != want {
		t.Errorf("ToolBinDir(node) = %q, want %q", got, want)
	}

	if want := filepath.Join(root, "tools", "image", "node", "20.11.1", "node_modules", "npm", "package.json"); home.NodeBundledNpmPackageJSON("20.11.1") != want {
		t.Errorf("NodeBundledNpmPackageJSON() = %q, want %q", home.NodeBundledNpmPackageJSON("20.11.1"), want)
	}
}

func TestToolBinDirErrors(t *testing.T) {
	t.Parallel()

	home := NewHome(t.TempDir())

	_, err := home.ToolBinDir(toolchain.Kind("pnpm"), "8.0.0")
	if !errors.Is(err, ErrLayoutUnavailable) || !errors.Is(err, toolchain.ErrInvalidKind) {
		t.Errorf("ToolBinDir(pnpm) error = %v", err)
	}
	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) || unavailable.Tool != "pnpm" || unavailable.Version != "8.0.0" {
		t.Errorf("ToolBinDir(pnpm) error context = %+v", unavailable)
	}

	if _, err := home.ToolBinDir(toolchain.Node, ""); !errors.Is(err, ErrLayoutUnavailable) {
		t.Errorf("ToolBinDir(node, \"\") error = %v", err)
	}
}

func TestPurgeTargets(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/srv/nodepin")

	unix, err := newHomeFor(root, platform.Darwin).PurgeTargets()
	if err != nil {
		t.Fatalf("PurgeTargets() error: %v", err)
	}
	if diff := cmp.Diff([]string{filepath.Join(root, "shim")}, unix); diff != "" {
		t.Errorf("unix PurgeTargets() mismatch (-want +got):\n%s", diff)
	}

	windows, err := newHomeFor(root, platform.Windows).PurgeTargets()
	if err != nil {
		t.Fatalf("PurgeTargets() error: %v", err)
	}
	want := []string{filepath.Join(root, "shim"), filepath.Join(root, "bin")}
	if diff := cmp.Diff(want, windows); diff != "" {
		t.Errorf("windows PurgeTargets() mismatch (-want +got):\n%s", diff)
	}
}

func TestNodeNpmVersionFile(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/srv/nodepin")
	home := NewHome(root)
	want := filepath.Join(root, "tools", "inventory", "node", "node-v18.0.0-npm")
	if got := home.NodeNpmVersionFile("18.0.0"); got != want {
		t.Errorf("NodeNpmVersionFile() = %q, want %q", got, want)
	}
}
