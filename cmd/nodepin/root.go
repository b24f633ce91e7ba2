// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/nodepin/nodepin/internal/config"
	"github.com/nodepin/nodepin/internal/image"
	"github.com/nodepin/nodepin/internal/issue"
	"github.com/nodepin/nodepin/internal/layout"
	"github.com/nodepin/nodepin/internal/logging"
	"github.com/nodepin/nodepin/pkg/toolchain"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

type (
	// rootFlags holds the persistent flags of one invocation.
	rootFlags struct {
		verbose    bool
		configPath string
	}

	// configLoadError marks a configuration failure so it is reported with
	// the configuration issue.
	configLoadError struct {
		err error
	}
)

func (e *configLoadError) Error() string { return e.err.Error() }

func (e *configLoadError) Unwrap() error { return e.err }

// NewRootCommand builds the nodepin command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "nodepin",
		Short: "Run commands against a pinned Node.js toolchain",
		Long: TitleStyle.Render("nodepin") + SubtitleStyle.Render(" - Run commands against a pinned Node.js toolchain") + `

nodepin builds the environment of a Node.js toolchain image: a Node
version plus optional npm and Yarn pins installed under the nodepin home.
It derives the bin directories of the selection, rewrites PATH so they
win over the nodepin shims, and resolves which npm ships with Node when
none is pinned.

` + SubtitleStyle.Render("Examples:") + `
  nodepin env --node 20.11.1                     Print the toolchain PATH
  nodepin env --node 20.11.1 --format shell      Print an export statement
  nodepin resolve npm --node 18.0.0              Show the bundled npm
  nodepin run --node 18.0.0 --yarn 1.22.0 -- yarn install
  nodepin config show                            Show current configuration`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.initRuntime(cmd, flags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/nodepin/config.cue)")

	rootCmd.AddCommand(
		newEnvCommand(app),
		newBinsCommand(app),
		newResolveCommand(app),
		newSystemPathCommand(app),
		newRunCommand(app),
		newConfigCommand(app),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Main runs the CLI with the process arguments and returns the exit code.
func Main() int {
	app := NewApp(Dependencies{})
	err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	return exitCode(err)
}

// Execute runs the CLI and exits the process. It is called by main.main().
func Execute() {
	os.Exit(Main())
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return int(exitErr.Code)
	}
	return 1
}

// initRuntime attaches the --config path to the command context and installs
// the logger. Configuration errors are surfaced as a warning here and as a
// failure by the commands that need the configuration.
func (a *App) initRuntime(cmd *cobra.Command, flags *rootFlags) error {
	ctx := contextWithConfigPath(cmd.Context(), flags.configPath)
	cmd.SetContext(ctx)

	level := logging.LevelWarn
	cfg, cfgErr := a.loadConfig(ctx)
	if cfgErr == nil {
		level = cfg.LogLevel
		if !flags.verbose {
			flags.verbose = cfg.UI.Verbose
		}
		a.colorScheme = cfg.UI.ColorScheme
	}
	if flags.verbose {
		level = logging.LevelDebug
	}
	a.verbose = flags.verbose

	if err := logging.Setup(a.stderr, level); err != nil {
		return err
	}

	if cfgErr != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(cfgErr, a.verbose))
	}
	slog.Debug("nodepin starting", "command", cmd.CommandPath(), "version", Version)
	return nil
}

// fail reports err on stderr, with the catalogued guidance for its kind,
// and returns the ExitError the command should return.
func (a *App) fail(err error) error {
	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose))

	if id := issueFor(err); id != 0 {
		style := a.colorScheme.String()
		if style == "" {
			style = string(config.ColorSchemeAuto)
		}
		if rendered, renderErr := issue.Get(id).Render(style); renderErr == nil {
			fmt.Fprint(a.stderr, rendered)
		} else {
			slog.Debug("failed to render issue", "id", id, "error", renderErr)
		}
	}

	return &ExitError{Code: 1}
}

// issueFor maps an error to the catalogued issue explaining it, or 0.
func issueFor(err error) issue.Id {
	var cfgErr *configLoadError
	var missing *missingImageError
	var startErr *commandStartError
	switch {
	case errors.As(err, &cfgErr):
		return issue.ConfigLoadFailedId
	case errors.As(err, &missing):
		return issue.ToolImageMissingId
	case errors.As(err, &startErr):
		return issue.CommandFailedId
	case errors.Is(err, toolchain.ErrInvalidVersion):
		return issue.InvalidVersionId
	case errors.Is(err, image.ErrInvalidPathMode):
		return issue.InvalidPathModeId
	case errors.Is(err, image.ErrDefaultVersionLookup):
		return issue.BundledVersionUnknownId
	case errors.Is(err, image.ErrPathBuild):
		return issue.PathBuildFailedId
	case errors.Is(err, layout.ErrLayoutUnavailable):
		return issue.HomeNotFoundId
	default:
		return 0
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
