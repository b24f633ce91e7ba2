// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nodepin/nodepin/internal/bundled"
	"github.com/nodepin/nodepin/internal/config"
	"github.com/nodepin/nodepin/internal/image"
	"github.com/nodepin/nodepin/internal/issue"
	"github.com/nodepin/nodepin/internal/layout"
	"github.com/nodepin/nodepin/pkg/fspath"
	"github.com/nodepin/nodepin/pkg/sourced"
	"github.com/nodepin/nodepin/pkg/toolchain"

	"github.com/spf13/cobra"
)

// selectionFlags are the flags every image command accepts.
type selectionFlags struct {
	node       string
	npm        string
	yarn       string
	nodeSource string
	npmSource  string
	yarnSource string
	pathMode   string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.node, "node", "", "Node.js version of the image (required)")
	fs.StringVar(&f.npm, "npm", "", "npm version to pin (default: the npm bundled with Node)")
	fs.StringVar(&f.yarn, "yarn", "", "Yarn version to pin")
	fs.StringVar(&f.nodeSource, "node-source", sourced.CommandLine.String(), "where the Node version was chosen (default, project, binary, command-line)")
	fs.StringVar(&f.npmSource, "npm-source", sourced.CommandLine.String(), "where the npm version was chosen")
	fs.StringVar(&f.yarnSource, "yarn-source", sourced.CommandLine.String(), "where the Yarn version was chosen")
	fs.StringVar(&f.pathMode, "path-mode", "", "PATH mode: standard or global-package (default from config)")
	_ = cmd.MarkFlagRequired("node")
}

// selection converts the flags into an image.Selection.
func (f *selectionFlags) selection() (image.Selection, error) {
	node, err := parsePin(toolchain.Node, f.node, f.nodeSource)
	if err != nil {
		return image.Selection{}, err
	}
	sel := image.Selection{Node: node}

	if f.npm != "" {
		npm, err := parsePin(toolchain.Npm, f.npm, f.npmSource)
		if err != nil {
			return image.Selection{}, err
		}
		sel.Npm = &npm
	}

	if f.yarn != "" {
		yarn, err := parsePin(toolchain.Yarn, f.yarn, f.yarnSource)
		if err != nil {
			return image.Selection{}, err
		}
		sel.Yarn = &yarn
	}

	return sel, nil
}

func parsePin(tool toolchain.Kind, version, source string) (image.Version, error) {
	v, err := toolchain.ParseVersion(version)
	if err != nil {
		return image.Version{}, issue.NewErrorContext().
			WithOperation("parse --" + tool.String() + " version").
			WithResource(version).
			WithSuggestion("Use a full version such as 20.11.1").
			Wrap(err).
			BuildError()
	}
	src, err := sourced.ParseSource(source)
	if err != nil {
		return image.Version{}, fmt.Errorf("--%s-source: %w", tool, err)
	}
	return sourced.New(v, src), nil
}

// newImage builds the image described by the selection flags over the
// configured nodepin home.
func (a *App) newImage(ctx context.Context, f *selectionFlags) (*image.Image, *layout.Home, error) {
	cfg, home, err := a.locateHome(ctx)
	if err != nil {
		return nil, nil, err
	}

	sel, err := f.selection()
	if err != nil {
		return nil, nil, err
	}

	mode := cfg.PathMode
	if f.pathMode != "" {
		if mode, err = image.ParsePathMode(f.pathMode); err != nil {
			return nil, nil, err
		}
	}
	slog.Debug("using nodepin home", "root", home.Root(), "path_mode", mode.String())

	img, err := image.New(sel, home,
		image.WithPathMode(mode),
		image.WithDefaultVersionLookup(bundled.NewInventoryLookup(home)),
		image.WithLookupEnv(a.LookupEnv),
	)
	if err != nil {
		return nil, nil, err
	}
	return img, home, nil
}

// locateHome loads the configuration and finds the nodepin home it names.
func (a *App) locateHome(ctx context.Context) (*config.Config, *layout.Home, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, nil, &configLoadError{err: err}
	}

	root := cfg.Home
	if root != "" {
		// A relative home in the config is taken from the working directory.
		if root, err = fspath.Abs(root); err != nil {
			return nil, nil, err
		}
	}

	home, err := layout.Locate(layout.LocateOptions{Root: root.String(), LookupEnv: a.LookupEnv})
	if err != nil {
		return nil, nil, issue.NewErrorContext().
			WithOperation("locate the nodepin home").
			WithSuggestion("Set " + layout.HomeEnvVar + " or the 'home' config key").
			Wrap(err).
			BuildError()
	}
	return cfg, home, nil
}
