// SPDX-License-Identifier: MPL-2.0

// Package envpath manipulates PATH-like environment values as ordered lists
// of directories.
//
// Lists are values: every operation returns a new List and leaves its
// receiver untouched, so a List split from the live environment can be
// reused across derivations.
package envpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnrepresentableEntry is the sentinel error wrapped by UnrepresentableEntryError.
var ErrUnrepresentableEntry = errors.New("path entry cannot be represented")

type (
	// List is an ordered list of directories. Order and duplicates are preserved.
	List struct {
		entries []string
	}

	// UnrepresentableEntryError is returned by Join when an entry cannot be
	// encoded in a PATH-like value, either because it contains the list
	// separator or a NUL byte.
	UnrepresentableEntryError struct {
		Entry  string
		Reason string
	}
)

// Split breaks a PATH-like value into its directories using the platform's
// list separator. An empty value yields an empty List.
func Split(value string) List {
	return List{entries: filepath.SplitList(value)}
}

// FromEntries builds a List from already separated directories.
func FromEntries(entries ...string) List {
	return List{entries: append([]string(nil), entries...)}
}

// Entries returns a copy of the directories in order.
func (l List) Entries() []string {
	return append([]string(nil), l.entries...)
}

// Len returns the number of entries.
func (l List) Len() int { return len(l.entries) }

// Remove drops every entry that names dir. Entries are compared after
// filepath.Clean so "/a/b/" and "/a/b" match. The remaining entries keep
// their relative order.
func (l List) Remove(dir string) List {
	target := filepath.Clean(dir)
	kept := make([]string, 0, len(l.entries))
	for _, entry := range l.entries {
		if entry != "" && filepath.Clean(entry) == target {
			continue
		}
		kept = append(kept, entry)
	}
	return List{entries: kept}
}

// RemoveAll drops every entry naming any of dirs.
func (l List) RemoveAll(dirs ...string) List {
	out := l
	for _, dir := range dirs {
		out = out.Remove(dir)
	}
	return out
}

// Prefix returns a List with dirs, in order, ahead of the existing entries.
func (l List) Prefix(dirs ...string) List {
	joined := make([]string, 0, len(dirs)+len(l.entries))
	joined = append(joined, dirs...)
	joined = append(joined, l.entries...)
	return List{entries: joined}
}

// Join encodes the List as a PATH-like value using the platform's list separator.
func (l List) Join() (string, error) {
	sep := string(os.PathListSeparator)
	for _, entry := range l.entries {
		if strings.Contains(entry, sep) {
			return "", &UnrepresentableEntryError{Entry: entry, Reason: fmt.Sprintf("contains the list separator %q", sep)}
		}
		if strings.ContainsRune(entry, 0) {
			return "", &UnrepresentableEntryError{Entry: entry, Reason: "contains a NUL byte"}
		}
	}
	return strings.Join(l.entries, sep), nil
}

// Error implements the error interface for UnrepresentableEntryError.
func (e *UnrepresentableEntryError) Error() string {
	return fmt.Sprintf("path entry %q %s", e.Entry, e.Reason)
}

// Unwrap returns ErrUnrepresentableEntry for errors.Is() compatibility.
func (e *UnrepresentableEntryError) Unwrap() error { return ErrUnrepresentableEntry }
