// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for nodepin.
//
// Each image command (env, bins, resolve, run) builds an image.Image from the
// --node/--npm/--yarn selection flags and the loaded configuration, then
// prints or applies what the image derives. system-path only needs the
// nodepin home.
package cmd
