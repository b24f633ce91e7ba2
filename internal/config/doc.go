// SPDX-License-Identifier: MPL-2.0

// Package config loads nodepin settings using Viper with CUE as the file format.
//
// Configuration is read from config.cue in ConfigDir ($XDG_CONFIG_HOME/nodepin
// on Linux, ~/Library/Application Support/nodepin on macOS, %APPDATA%\nodepin
// on Windows), validated against the embedded #Config schema, and can be
// overridden per key with NODEPIN_* environment variables.
package config
