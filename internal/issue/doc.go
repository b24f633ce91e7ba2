// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggested fixes. The issue catalog holds longer Markdown guidance for the
// failures users hit most often (a missing nodepin home, a PATH that cannot
// be built, an unknown bundled npm version), rendered with glamour.
package issue
