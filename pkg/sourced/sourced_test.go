// SPDX-License-Identifier: MPL-2.0

package sourced

import (
	"errors"
	"testing"
)

func TestParseSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Source
		wantErr bool
	}{
		{input: "default", want: Default},
		{input: "project", want: Project},
		{input: "binary", want: Binary},
		{input: "command-line", want: CommandLine},
		{input: "commandline", wantErr: true},
		{input: "", wantErr: true},
		{input: "Project", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSource(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSource) {
					t.Fatalf("ParseSource(%q) error = %v, want ErrInvalidSource", tt.input, err)
				}
				var srcErr *InvalidSourceError
				if !errors.As(err, &srcErr) || srcErr.Value != tt.input {
					t.Errorf("ParseSource(%q) error value = %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSource(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSource(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestSourceIsValid(t *testing.T) {
	t.Parallel()

	if valid, errs := CommandLine.IsValid(); !valid || errs != nil {
		t.Errorf("CommandLine.IsValid() = %v, %v", valid, errs)
	}

	bad := Source(42)
	valid, errs := bad.IsValid()
	if valid {
		t.Fatal("Source(42).IsValid() = true, want false")
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidSource) {
		t.Errorf("Source(42).IsValid() errors = %v", errs)
	}
	if bad.String() != "source(42)" {
		t.Errorf("Source(42).String() = %q", bad.String())
	}
}

func TestSourcedEqualIgnoresSource(t *testing.T) {
	t.Parallel()

	a := New("18.0.0", Project)
	b := New("18.0.0", CommandLine)
	c := New("20.1.0", Project)

	if !a.Equal(b) {
		t.Error("values with different sources should be equal")
	}
	if a.Equal(c) {
		t.Error("values with different values should not be equal")
	}
}

func TestSourcedCloneAndWithValue(t *testing.T) {
	t.Parallel()

	node := New("18.0.0", Project)
	clone := node.Clone()
	if clone != node {
		t.Errorf("Clone() = %v, want %v", clone, node)
	}

	npm := WithValue(node, "8.6.0")
	if npm.Value != "8.6.0" || npm.Source != Project {
		t.Errorf("WithValue() = %v, want 8.6.0 tagged project", npm)
	}
	if node.Value != "18.0.0" {
		t.Errorf("WithValue() modified its input: %v", node)
	}
}

func TestSourcedString(t *testing.T) {
	t.Parallel()

	if got := New("1.22.0", CommandLine).String(); got != "1.22.0 (command-line)" {
		t.Errorf("String() = %q", got)
	}
}
