// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const configSchema = `
#Config: close({
	home?:      string & !=""
	path_mode?: "standard" | "global-package"
	ui?: close({
		verbose?:      bool
		color_scheme?: "auto" | "dark" | "light"
	})
})
`

func TestFormatErrorPassThrough(t *testing.T) {
	t.Parallel()

	if err := FormatError(nil, "config.cue"); err != nil {
		t.Errorf("FormatError(nil) = %v, want nil", err)
	}

	cause := errors.New("permission denied")
	err := FormatError(cause, "config.cue")
	if !errors.Is(err, cause) {
		t.Errorf("FormatError() = %v, want it to wrap the cause", err)
	}
	if got, want := err.Error(), "config.cue: permission denied"; got != want {
		t.Errorf("FormatError() = %q, want %q", got, want)
	}
}

func TestFormatErrorConfigPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		wantPath string
	}{
		{
			name:     "unknown path mode",
			data:     `path_mode: "global"`,
			wantPath: "path_mode: ",
		},
		{
			name:     "unknown color scheme",
			data:     `ui: color_scheme: "solarized"`,
			wantPath: "ui.color_scheme: ",
		},
		{
			name:     "empty home",
			data:     `home: ""`,
			wantPath: "home: ",
		},
		{
			name:     "unknown ui field",
			data:     `ui: theme: "dark"`,
			wantPath: "ui.theme: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Unify(configSchema, []byte(tt.data), "#Config", WithFilename("config.cue"))
			if err == nil {
				t.Fatal("Unify() expected error")
			}
			msg := err.Error()
			if !strings.HasPrefix(msg, "config.cue: ") {
				t.Errorf("error = %q, want it prefixed with the file name", msg)
			}
			if !strings.Contains(msg, tt.wantPath) {
				t.Errorf("error = %q, want it to contain %q", msg, tt.wantPath)
			}
			if strings.Contains(msg, "#Config") {
				t.Errorf("error = %q, should be relative to the document", msg)
			}
		})
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{path: nil, want: ""},
		{path: []string{"#Config"}, want: ""},
		{path: []string{"#Config", "path_mode"}, want: "path_mode"},
		{path: []string{"#Config", "ui", "color_scheme"}, want: "ui.color_scheme"},
		{path: []string{"ui", "color_scheme"}, want: "ui.color_scheme"},
		{path: []string{"#Config", "pins", "0", "version"}, want: "pins[0].version"},
		{path: []string{"0", "home"}, want: "0.home"},
	}

	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	const maxSize = 64

	for _, size := range []int{0, maxSize - 1, maxSize} {
		if err := CheckFileSize(make([]byte, size), maxSize, "config.cue"); err != nil {
			t.Errorf("CheckFileSize(%d bytes) = %v, want nil", size, err)
		}
	}

	err := CheckFileSize(make([]byte, maxSize+1), maxSize, "config.cue")
	var tooLarge *FileTooLargeError
	if !errors.As(err, &tooLarge) || !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("CheckFileSize(%d bytes) = %v, want *FileTooLargeError", maxSize+1, err)
	}
	if tooLarge.Filename != "config.cue" || tooLarge.Size != maxSize+1 || tooLarge.Max != maxSize {
		t.Errorf("FileTooLargeError = %+v", tooLarge)
	}
}
