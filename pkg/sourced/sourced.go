// SPDX-License-Identifier: MPL-2.0

package sourced

import "fmt"

// Sourced is a resolved value together with the origin of its selection.
// Methods use value receivers; a Sourced is never modified after New.
type Sourced[T comparable] struct {
	Value  T
	Source Source
}

// New pairs value with source.
func New[T comparable](value T, source Source) Sourced[T] {
	return Sourced[T]{Value: value, Source: source}
}

// WithValue tags value with the origin of s. It is used when a value is
// derived from s rather than selected on its own.
func WithValue[T, U comparable](s Sourced[T], value U) Sourced[U] {
	return Sourced[U]{Value: value, Source: s.Source}
}

// Clone returns a copy of s.
func (s Sourced[T]) Clone() Sourced[T] {
	return s
}

// Equal reports whether s and other hold the same value. The source is not compared.
func (s Sourced[T]) Equal(other Sourced[T]) bool {
	return s.Value == other.Value
}

// String renders the value followed by its origin, e.g. "18.0.0 (project)".
func (s Sourced[T]) String() string {
	return fmt.Sprintf("%v (%s)", s.Value, s.Source)
}
