// SPDX-License-Identifier: MPL-2.0

package envpath

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func joinList(dirs ...string) string {
	return strings.Join(dirs, string(os.PathListSeparator))
}

func dir(p string) string { return filepath.FromSlash(p) }

func TestSplitPreservesOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	value := joinList(dir("/usr/bin"), dir("/opt/bin"), dir("/usr/bin"))
	got := Split(value).Entries()
	want := []string{dir("/usr/bin"), dir("/opt/bin"), dir("/usr/bin")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Split() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitEmpty(t *testing.T) {
	t.Parallel()

	if n := Split("").Len(); n != 0 {
		t.Errorf("Split(\"\").Len() = %d, want 0", n)
	}
	got, err := Split("").Join()
	if err != nil || got != "" {
		t.Errorf("Split(\"\").Join() = %q, %v", got, err)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	list := FromEntries(dir("/a"), dir("/shim"), dir("/b"), dir("/shim/"), dir("/c"))
	got := list.Remove(dir("/shim")).Entries()
	want := []string{dir("/a"), dir("/b"), dir("/c")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Remove() mismatch (-want +got):\n%s", diff)
	}

	if list.Len() != 5 {
		t.Errorf("Remove() modified the receiver: %v", list.Entries())
	}
}

func TestRemoveKeepsEmptyEntries(t *testing.T) {
	t.Parallel()

	// An empty entry means the current directory to most shells; it is not
	// the same as "." after Clean and must not be dropped by Remove(".").
	list := FromEntries("", dir("/a"))
	got := list.Remove(".").Entries()
	if diff := cmp.Diff([]string{"", dir("/a")}, got); diff != "" {
		t.Errorf("Remove(.) mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveAll(t *testing.T) {
	t.Parallel()

	list := FromEntries(dir("/x"), dir("/a"), dir("/y"), dir("/b"))
	got := list.RemoveAll(dir("/x"), dir("/y"), dir("/missing")).Entries()
	if diff := cmp.Diff([]string{dir("/a"), dir("/b")}, got); diff != "" {
		t.Errorf("RemoveAll() mismatch (-want +got):\n%s", diff)
	}
}

func TestPrefix(t *testing.T) {
	t.Parallel()

	list := FromEntries(dir("/usr/bin"))
	got := list.Prefix(dir("/yarn/bin"), dir("/node/bin")).Entries()
	want := []string{dir("/yarn/bin"), dir("/node/bin"), dir("/usr/bin")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Prefix() mismatch (-want +got):\n%s", diff)
	}
	if list.Len() != 1 {
		t.Errorf("Prefix() modified the receiver: %v", list.Entries())
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()

	got, err := FromEntries(dir("/a"), dir("/b")).Join()
	if err != nil {
		t.Fatalf("Join() error: %v", err)
	}
	if want := joinList(dir("/a"), dir("/b")); got != want {
		t.Errorf("Join() = %q, want %q", got, want)
	}
}

func TestJoinRejectsUnrepresentableEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry string
	}{
		{name: "separator", entry: "/bad" + string(os.PathListSeparator) + "dir"},
		{name: "nul byte", entry: "/bad\x00dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := FromEntries(dir("/ok"), tt.entry).Join()
			if !errors.Is(err, ErrUnrepresentableEntry) {
				t.Fatalf("Join() error = %v, want ErrUnrepresentableEntry", err)
			}
			var entryErr *UnrepresentableEntryError
			if !errors.As(err, &entryErr) || entryErr.Entry != tt.entry {
				t.Errorf("Join() error entry = %v, want %q", err, tt.entry)
			}
		})
	}
}
