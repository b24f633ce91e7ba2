// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates CUE documents against an embedded schema.
//
// Loading follows three steps:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with a schema definition
//  3. Validate and decode the result
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schema string
//
//	values, err := cueutil.DecodeMap(schema, data, "#Config",
//	    cueutil.WithFilename(path))
//	if err != nil {
//	    return err // error carries the file name and the CUE path
//	}
//
// Errors are reported as "<file>: <path>: <message>" with array indices in
// bracket notation, e.g. "config.cue: ui.color_scheme: conflicting values".
package cueutil
