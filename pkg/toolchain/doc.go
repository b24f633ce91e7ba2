// SPDX-License-Identifier: MPL-2.0

// Package toolchain defines the tools nodepin manages and their versions.
//
// Versions are semantic versions validated with golang.org/x/mod/semver and
// stored without the leading "v", which is the form used in install
// directory names.
package toolchain
