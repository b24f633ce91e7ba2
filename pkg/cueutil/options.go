// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize bounds the size of user-provided CUE documents (1 MiB).
const DefaultMaxFileSize int64 = 1 << 20

type (
	// Option configures a decode call.
	Option func(*options)

	options struct {
		filename    string
		maxFileSize int64
		concrete    bool
	}
)

func defaultOptions() options {
	return options{maxFileSize: DefaultMaxFileSize}
}

// WithFilename sets the file name reported in errors.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(o *options) { o.maxFileSize = size }
}

// WithConcrete requires every field of the unified value to be concrete.
// Without it, optional schema fields may stay unset.
func WithConcrete() Option {
	return func(o *options) { o.concrete = true }
}
