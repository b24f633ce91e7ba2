// SPDX-License-Identifier: MPL-2.0

// Package sourced pairs a resolved value with the provenance of its selection.
//
// A Sourced value records where a toolchain version came from (a project pin,
// the user default, a command-line override, or a binary's own manifest) so
// that derived values can carry the same origin forward. The tag is metadata:
// two Sourced values with equal Value are interchangeable.
package sourced
