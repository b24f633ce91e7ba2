// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include file fixtures (MustMkdirAll, MustWriteFile), an
// injectable environment lookup (EnvLookup) and a fake nodepin home populated
// with toolchain images (NewFakeHome).
package testutil
