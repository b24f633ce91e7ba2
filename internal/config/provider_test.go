// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"testing"

	"github.com/nodepin/nodepin/pkg/types"
)

func TestLoadOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       LoadOptions
		wantErrors int
	}{
		{name: "all empty", opts: LoadOptions{}},
		{name: "valid paths", opts: LoadOptions{ConfigFilePath: "/tmp/config.cue", ConfigDirPath: "/tmp/config"}},
		{name: "blank file path", opts: LoadOptions{ConfigFilePath: types.FilesystemPath("   ")}, wantErrors: 1},
		{name: "both blank", opts: LoadOptions{ConfigFilePath: "\t", ConfigDirPath: " "}, wantErrors: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if tt.wantErrors == 0 {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidLoadOptions) {
				t.Fatalf("Validate() error = %v, want ErrInvalidLoadOptions", err)
			}
			var loadErr *InvalidLoadOptionsError
			if !errors.As(err, &loadErr) {
				t.Fatalf("error should be *InvalidLoadOptionsError, got: %T", err)
			}
			if len(loadErr.FieldErrors) != tt.wantErrors {
				t.Errorf("expected %d field errors, got %d", tt.wantErrors, len(loadErr.FieldErrors))
			}
		})
	}
}

func TestProviderLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, `ui: verbose: true`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: types.FilesystemPath(dir)})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.UI.Verbose {
		t.Error("Load() should read ui.verbose from the file")
	}

	if _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: "  "}); !errors.Is(err, ErrInvalidLoadOptions) {
		t.Errorf("Load() error = %v, want ErrInvalidLoadOptions", err)
	}
}

func TestColorSchemeIsValid(t *testing.T) {
	t.Parallel()

	for _, cs := range []ColorScheme{ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight} {
		if valid, errs := cs.IsValid(); !valid {
			t.Errorf("ColorScheme(%q) should be valid: %v", cs, errs)
		}
	}
	valid, errs := ColorScheme("neon").IsValid()
	if valid || len(errs) != 1 || !errors.Is(errs[0], ErrInvalidColorScheme) {
		t.Errorf("ColorScheme(neon).IsValid() = %v, %v", valid, errs)
	}
}
