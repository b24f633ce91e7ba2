// SPDX-License-Identifier: MPL-2.0

// Package platform names the operating systems nodepin lays out differently.
package platform
