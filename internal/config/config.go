// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/nodepin/nodepin/internal/issue"
	"github.com/nodepin/nodepin/pkg/cueutil"
	"github.com/nodepin/nodepin/pkg/fspath"
	"github.com/nodepin/nodepin/pkg/platform"
	"github.com/nodepin/nodepin/pkg/types"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "nodepin"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes the environment variables that override config keys,
	// e.g. NODEPIN_PATH_MODE for path_mode.
	EnvPrefix = "NODEPIN"
)

// envKeys lists the keys that may be overridden from the environment. The
// home key is absent: NODEPIN_HOME is read by the home locator with lower
// precedence than an explicit configuration.
var envKeys = []string{"path_mode", "log_level", "ui.verbose", "ui.color_scheme"}

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the nodepin configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the file Load reads for opts: ConfigFilePath when
// set, otherwise config.cue in the configuration directory. The file may not exist.
func ConfigFilePath(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath.String(), nil
	}
	cfgDir, err := configDirWithOverride(opts.ConfigDirPath.String())
	if err != nil {
		return "", err
	}
	return fspath.JoinStr(types.FilesystemPath(cfgDir), ConfigFileName+"."+ConfigFileExt).String(), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. It returns the file that was loaded, or "" when the
// defaults were used.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("home", defaults.Home.String())
	v.SetDefault("path_mode", defaults.PathMode.String())
	v.SetDefault("log_level", defaults.LogLevel.String())
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme.String())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, "", fmt.Errorf("failed to bind %s to the environment: %w", key, err)
		}
	}

	cuePath, err := ConfigFilePath(opts)
	if err != nil {
		return nil, "", err
	}

	resolvedPath := ""
	switch {
	case fileExists(cuePath):
		if err := loadCUEIntoViper(v, cuePath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(cuePath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("See 'nodepin config --help' for configuration options").
				Wrap(err).
				BuildError()
		}
		resolvedPath = cuePath
	case opts.ConfigFilePath != "":
		// An explicitly requested file must exist; the default one is optional.
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(cuePath).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Check that the file exists and is readable").
			WithSuggestion("Use 'nodepin config show' to see the default configuration").
			Wrap(fmt.Errorf("config file not found: %s", cuePath)).
			BuildError()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// The schema covers the file; environment overrides are only checked here.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Check the " + EnvPrefix + "_* environment variables").
			WithSuggestion("Run 'nodepin config show' to see the effective values").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against the #Config schema and merges
// the fields it sets into Viper. Unset fields keep their defaults.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := cueutil.DecodeMap(configSchema, data, "#Config", cueutil.WithFilename(path))
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a default config file to the configuration
// directory unless one exists. It returns the path of the file.
func CreateDefaultConfig(opts LoadOptions) (string, error) {
	cfgPath, err := ConfigFilePath(opts)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(fspath.Dir(types.FilesystemPath(cfgPath)).String(), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// nodepin configuration file\n")
	sb.WriteString("// Unset fields use their defaults; see 'nodepin config --help'.\n\n")

	if cfg.Home != "" {
		fmt.Fprintf(&sb, "home: %q\n", cfg.Home)
	}
	fmt.Fprintf(&sb, "path_mode: %q\n", cfg.PathMode)
	fmt.Fprintf(&sb, "log_level: %q\n", cfg.LogLevel)

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	sb.WriteString("}\n")

	return sb.String()
}
