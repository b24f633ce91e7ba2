// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nodepin/nodepin/internal/image"
	"github.com/nodepin/nodepin/internal/layout"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/syntax"
)

const (
	formatPlain = "plain"
	formatShell = "shell"
	formatTOML  = "toml"
)

type (
	// envReport is the TOML document printed by `env --format toml`.
	envReport struct {
		Home     string       `toml:"home"`
		PathMode string       `toml:"path_mode"`
		Path     string       `toml:"path"`
		BinDirs  []string     `toml:"bin_dirs"`
		Tools    []toolReport `toml:"tool"`
	}

	toolReport struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
		Source  string `toml:"source"`
		Pinned  bool   `toml:"pinned"`
	}
)

func newEnvCommand(app *App) *cobra.Command {
	var (
		sel    selectionFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Print the PATH of a toolchain image",
		Long: `Print the PATH that resolves node, npm and yarn to the selected image.

Formats:
  plain   the PATH value
  shell   an export statement for POSIX shells
  toml    a report with the resolved versions, their sources and bin directories`,
		Example: `  nodepin env --node 20.11.1
  eval "$(nodepin env --node 20.11.1 --npm 10.5.0 --format shell)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			img, home, err := app.newImage(cmd.Context(), &sel)
			if err != nil {
				return app.fail(err)
			}
			if err := writeEnv(app.stdout, img, home, format); err != nil {
				return app.fail(err)
			}
			return nil
		},
	}

	sel.register(cmd)
	cmd.Flags().StringVar(&format, "format", formatPlain, "output format: plain, shell or toml")

	return cmd
}

func writeEnv(w io.Writer, img *image.Image, home *layout.Home, format string) error {
	path, err := img.Path()
	if err != nil {
		return err
	}

	switch format {
	case formatPlain:
		_, err = fmt.Fprintln(w, path)
		return err
	case formatShell:
		quoted, err := syntax.Quote(path, syntax.LangPOSIX)
		if err != nil {
			return fmt.Errorf("failed to quote PATH for the shell: %w", err)
		}
		_, err = fmt.Fprintf(w, "export %s=%s\n", image.PathEnvVar, quoted)
		return err
	case formatTOML:
		report, err := buildEnvReport(img, home, path)
		if err != nil {
			return err
		}
		return toml.NewEncoder(w).Encode(report)
	default:
		return fmt.Errorf("unknown format %q (expected %s, %s or %s)", format, formatPlain, formatShell, formatTOML)
	}
}

func buildEnvReport(img *image.Image, home *layout.Home, path string) (*envReport, error) {
	bins, err := img.BinDirs()
	if err != nil {
		return nil, err
	}

	sel := img.Selection()
	report := &envReport{
		Home:     home.Root(),
		PathMode: img.Mode().String(),
		Path:     path,
		BinDirs:  bins,
		Tools: []toolReport{{
			Name:    "node",
			Version: sel.Node.Value.String(),
			Source:  sel.Node.Source.String(),
			Pinned:  true,
		}},
	}

	npm, err := img.ResolveNpm()
	switch {
	case err == nil:
		report.Tools = append(report.Tools, toolReport{
			Name:    "npm",
			Version: npm.Value.String(),
			Source:  npm.Source.String(),
			Pinned:  sel.Npm != nil,
		})
	case errors.Is(err, image.ErrDefaultVersionLookup):
		// The report stays useful without the bundled npm.
		slog.Warn("npm version bundled with node is unknown", "node", sel.Node.Value.String(), "error", err)
	default:
		return nil, err
	}

	if sel.Yarn != nil {
		report.Tools = append(report.Tools, toolReport{
			Name:    "yarn",
			Version: sel.Yarn.Value.String(),
			Source:  sel.Yarn.Source.String(),
			Pinned:  true,
		})
	}

	return report, nil
}

func newSystemPathCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "system-path",
		Short: "Print PATH without the nodepin shims",
		Long: `Print the current PATH with the nodepin shim directories removed and
nothing prefixed, so commands reach the system toolchain. No Node version is
needed, and the shims are removed whatever the PATH mode.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, home, err := app.locateHome(cmd.Context())
			if err != nil {
				return app.fail(err)
			}
			path, err := image.SystemPath(home, app.LookupEnv)
			if err != nil {
				return app.fail(err)
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	}
}
