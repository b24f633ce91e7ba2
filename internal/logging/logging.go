// SPDX-License-Identifier: MPL-2.0

// Package logging installs the process-wide slog logger.
//
// Code logs through the log/slog package functions; Setup routes those
// records to a charmbracelet/log handler so that diagnostics on stderr share
// the CLI's styling.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// LevelDebug shows every diagnostic.
	LevelDebug Level = "debug"
	// LevelInfo shows informational messages and above.
	LevelInfo Level = "info"
	// LevelWarn shows warnings and errors. It is the default.
	LevelWarn Level = "warn"
	// LevelError shows errors only.
	LevelError Level = "error"
)

// ErrInvalidLevel is the sentinel error wrapped by InvalidLevelError.
var ErrInvalidLevel = errors.New("invalid log level")

type (
	// Level is a configured log level name.
	Level string

	// InvalidLevelError is returned when a Level value is not recognized.
	InvalidLevelError struct {
		Value Level
	}
)

// IsValid returns whether the Level is a known level name. The zero value
// is valid and means LevelWarn.
func (l Level) IsValid() (bool, []error) {
	switch Level(strings.ToLower(string(l))) {
	case "", LevelDebug, LevelInfo, LevelWarn, LevelError:
		return true, nil
	default:
		return false, []error{&InvalidLevelError{Value: l}}
	}
}

// String returns the string representation of the Level.
func (l Level) String() string { return string(l) }

// New builds a logger writing to w at the given level.
func New(w io.Writer, level Level) (*log.Logger, error) {
	if valid, errs := level.IsValid(); !valid {
		return nil, errs[0]
	}
	if level == "" {
		level = LevelWarn
	}

	parsed, err := log.ParseLevel(strings.ToLower(string(level)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	return log.NewWithOptions(w, log.Options{
		Prefix:          "nodepin",
		Level:           parsed,
		ReportTimestamp: false,
	}), nil
}

// Setup makes a logger for w and level the slog default.
func Setup(w io.Writer, level Level) error {
	logger, err := New(w, level)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(logger))
	return nil
}

// Error implements the error interface for InvalidLevelError.
func (e *InvalidLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (expected debug, info, warn or error)", e.Value)
}

// Unwrap returns ErrInvalidLevel for errors.Is() compatibility.
func (e *InvalidLevelError) Unwrap() error { return ErrInvalidLevel }
