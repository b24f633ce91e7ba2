// SPDX-License-Identifier: MPL-2.0

package image

import (
	"errors"
	"log/slog"
	"os"

	"github.com/nodepin/nodepin/internal/envpath"
	"github.com/nodepin/nodepin/pkg/sourced"
	"github.com/nodepin/nodepin/pkg/toolchain"
)

// PathEnvVar is the search path variable an Image rewrites.
const PathEnvVar = "PATH"

type (
	// Image is a toolchain selection bound to the services it derives paths
	// and versions from. It is read-only after New.
	Image struct {
		selection Selection
		layout    Layout
		defaults  DefaultVersionLookup
		mode      PathMode
		lookupEnv func(string) (string, bool)
	}

	// Option configures an Image.
	Option func(*Image)
)

// WithPathMode sets how Path treats existing PATH entries. The default is PathModeStandard.
func WithPathMode(mode PathMode) Option {
	return func(i *Image) { i.mode = mode }
}

// WithDefaultVersionLookup sets the lookup used to resolve unpinned package managers.
func WithDefaultVersionLookup(lookup DefaultVersionLookup) Option {
	return func(i *Image) { i.defaults = lookup }
}

// WithLookupEnv replaces os.LookupEnv as the source of the current PATH.
func WithLookupEnv(lookupEnv func(string) (string, bool)) Option {
	return func(i *Image) { i.lookupEnv = lookupEnv }
}

// New binds a selection to a layout. The selection is copied, so later
// changes to the caller's pins do not affect the Image.
func New(sel Selection, layout Layout, opts ...Option) (*Image, error) {
	if sel.Node.Value.IsZero() {
		return nil, ErrMissingRuntime
	}
	if layout == nil {
		return nil, errors.New("image layout is required")
	}

	img := &Image{
		selection: sel.clone(),
		layout:    layout,
		mode:      PathModeStandard,
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(img)
	}

	if valid, errs := img.mode.IsValid(); !valid {
		return nil, errs[0]
	}
	return img, nil
}

// Selection returns a copy of the selection the Image was built from.
func (i *Image) Selection() Selection { return i.selection.clone() }

// Mode returns the PATH mode of the Image.
func (i *Image) Mode() PathMode { return i.mode }

// BinDirs returns the bin directories of the selection in search order:
// the npm pin, then the Yarn pin, then Node. Node always comes last so that
// a pinned npm shadows the npm that ships inside the Node image.
func (i *Image) BinDirs() ([]string, error) {
	bins := make([]string, 0, 3)

	if npm := i.selection.Npm; npm != nil {
		dir, err := i.layout.ToolBinDir(toolchain.Npm, npm.Value.String())
		if err != nil {
			return nil, err
		}
		bins = append(bins, dir)
	}

	if yarn := i.selection.Yarn; yarn != nil {
		dir, err := i.layout.ToolBinDir(toolchain.Yarn, yarn.Value.String())
		if err != nil {
			return nil, err
		}
		bins = append(bins, dir)
	}

	dir, err := i.layout.ToolBinDir(toolchain.Node, i.selection.Node.Value.String())
	if err != nil {
		return nil, err
	}
	bins = append(bins, dir)

	return bins, nil
}

// Path returns the current PATH rewritten to find the selection's tools in
// their image directories. In PathModeStandard the nodepin shim directories
// are removed first; in PathModeGlobalPackage the existing entries are kept
// as they are. The result is a pure function of the current PATH and the
// selection.
func (i *Image) Path() (string, error) {
	current := currentPath(i.lookupEnv)
	if i.mode == PathModeStandard {
		purged, err := purge(i.layout, current)
		if err != nil {
			return "", err
		}
		current = purged
	}

	bins, err := i.BinDirs()
	if err != nil {
		return "", err
	}

	joined, err := current.Prefix(bins...).Join()
	if err != nil {
		return "", &PathBuildError{Dirs: bins, Cause: err}
	}
	return joined, nil
}

// SystemPath returns the current PATH with the nodepin shim directories
// removed and nothing prefixed. It lets a command reach the system toolchain
// regardless of the selection, and always purges whatever the PathMode.
func (i *Image) SystemPath() (string, error) {
	return SystemPath(i.layout, i.lookupEnv)
}

// SystemPath purges the directories listed by targets from the PATH read
// through lookupEnv. It needs no selection, so callers without a Node
// version can use it directly. A nil lookupEnv reads the process environment.
func SystemPath(targets PurgeTargetProvider, lookupEnv func(string) (string, bool)) (string, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	purged, err := purge(targets, currentPath(lookupEnv))
	if err != nil {
		return "", err
	}

	joined, err := purged.Join()
	if err != nil {
		return "", &PathBuildError{Cause: err}
	}
	return joined, nil
}

// ResolveNpm returns the npm version that will be available with this image.
func (i *Image) ResolveNpm() (Version, error) {
	return i.ResolvePackageManager(toolchain.Npm)
}

// ResolvePackageManager returns the effective version of a package manager.
// A pin is returned unchanged. Without a pin, the version bundled with the
// selected Node is looked up and tagged with Node's source: the package
// manager was chosen implicitly by whatever chose Node.
func (i *Image) ResolvePackageManager(tool toolchain.Kind) (Version, error) {
	if !tool.IsPackageManager() {
		return Version{}, &toolchain.InvalidPackageManagerKindError{Value: tool}
	}

	if pin := i.pin(tool); pin != nil {
		return pin.Clone(), nil
	}

	node := i.selection.Node
	if i.defaults == nil {
		return Version{}, &DefaultVersionLookupError{Tool: tool, Node: node.Value, Cause: ErrNoDefaultVersionLookup}
	}

	v, err := i.defaults.DefaultVersion(node.Value, tool)
	if err != nil {
		return Version{}, &DefaultVersionLookupError{Tool: tool, Node: node.Value, Cause: err}
	}
	slog.Debug("using package manager bundled with node", "tool", tool, "version", v.String(), "node", node.Value.String(), "source", node.Source.String())

	return sourced.WithValue(node, v), nil
}

func (i *Image) pin(tool toolchain.Kind) *Version {
	switch tool {
	case toolchain.Npm:
		return i.selection.Npm
	case toolchain.Yarn:
		return i.selection.Yarn
	default:
		return nil
	}
}

func currentPath(lookupEnv func(string) (string, bool)) envpath.List {
	value, ok := lookupEnv(PathEnvVar)
	if !ok {
		value = ""
	}
	return envpath.Split(value)
}

func purge(targets PurgeTargetProvider, list envpath.List) (envpath.List, error) {
	dirs, err := targets.PurgeTargets()
	if err != nil {
		return envpath.List{}, err
	}

	purged := list.RemoveAll(dirs...)
	if removed := list.Len() - purged.Len(); removed > 0 {
		slog.Debug("removed nodepin directories from PATH", "count", removed, "targets", dirs)
	}
	return purged, nil
}
