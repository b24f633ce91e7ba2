// SPDX-License-Identifier: MPL-2.0

// Package image builds the execution environment of a pinned toolchain.
//
// An Image holds a resolved Selection (a Node version and optional npm and
// Yarn pins, each tagged with its provenance) and derives from it:
//
//   - the ordered list of bin directories (npm, Yarn, then Node last so that
//     an explicit package manager pin shadows the copy bundled with Node),
//   - the PATH value that resolves those tools to the pinned installations
//     instead of the nodepin shims,
//   - the effective package manager version, inheriting the version bundled
//     with Node when nothing was pinned.
//
// Deciding which versions are active is the caller's job; an Image only
// consumes the outcome. Images are immutable and safe for concurrent use.
package image
