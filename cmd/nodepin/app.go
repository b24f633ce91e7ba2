// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/nodepin/nodepin/internal/config"
	"github.com/nodepin/nodepin/pkg/types"
)

type (
	configPathContextKey struct{}

	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: every Cobra command handler receives an App reference.
	App struct {
		Config    ConfigProvider
		LookupEnv func(string) (string, bool)
		stdout    io.Writer
		stderr    io.Writer

		// Set per invocation by the root command.
		verbose     bool
		colorScheme config.ColorScheme
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config    ConfigProvider
		LookupEnv func(string) (string, bool)
		Stdout    io.Writer
		Stderr    io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.LookupEnv == nil {
		deps.LookupEnv = os.LookupEnv
	}

	return &App{
		Config:    deps.Config,
		LookupEnv: deps.LookupEnv,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}
}

// loadConfig loads the configuration for the current invocation, honoring
// the --config path attached to ctx.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	return a.Config.Load(ctx, loadOptionsFromContext(ctx))
}

// contextWithConfigPath attaches the explicit --config value to the context.
func contextWithConfigPath(ctx context.Context, configPath string) context.Context {
	return context.WithValue(ctx, configPathContextKey{}, configPath)
}

func loadOptionsFromContext(ctx context.Context) config.LoadOptions {
	if v, ok := ctx.Value(configPathContextKey{}).(string); ok && v != "" {
		return config.LoadOptions{ConfigFilePath: types.FilesystemPath(v)}
	}
	return config.LoadOptions{}
}
