// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import "fmt"

// SettingState records where a setting's value came from.
type SettingState int

const (
	// Unset means the layer said nothing about the setting.
	Unset SettingState = iota

	// Default means the layer carries a value only because it had to
	// show something (for example a flag's compiled-in default). A
	// Default never overrides a lower layer's Explicit value.
	Default

	// Explicit means the user asked for this value, even if it happens
	// to equal the built-in default.
	Explicit
)

// String returns the lower-case state name used in "config show" output.
func (s SettingState) String() string {
	switch s {
	case Unset:
		return "unset"
	case Default:
		return "default"
	case Explicit:
		return "explicit"
	default:
		return fmt.Sprintf("SettingState(%d)", int(s))
	}
}

// Setting is a three-valued configuration field: unset, defaulted, or
// explicitly set. The zero value is Unset.
type Setting[T any] struct {
	state SettingState
	value T
}

// Set returns an Explicit setting holding value.
func Set[T any](value T) Setting[T] {
	return Setting[T]{state: Explicit, value: value}
}

// DefaultTo returns a Default setting holding value.
func DefaultTo[T any](value T) Setting[T] {
	return Setting[T]{state: Default, value: value}
}

// State returns how the setting was populated.
func (s Setting[T]) State() SettingState {
	return s.state
}

// IsExplicit reports whether the setting was explicitly provided.
func (s Setting[T]) IsExplicit() bool {
	return s.state == Explicit
}

// IsSet reports whether the setting carries any value (Default or Explicit).
func (s Setting[T]) IsSet() bool {
	return s.state != Unset
}

// Value returns the held value. For an Unset setting this is T's zero value.
func (s Setting[T]) Value() T {
	return s.value
}

// Get returns the held value and whether the setting is populated.
func (s Setting[T]) Get() (T, bool) {
	return s.value, s.state != Unset
}

// Source names the configuration layer a resolved value came from.
type Source string

const (
	SourceCLI     Source = "cli"
	SourceFile    Source = "file"
	SourceDefault Source = "default"
)

// pick applies the three-layer precedence rule to one field: an Explicit
// CLI value wins, then an Explicit file value, then any Default-tagged
// value (CLI before file), then the built-in fallback.
func pick[T any](cli, file Setting[T], fallback T) (T, Source) {
	switch {
	case cli.state == Explicit:
		return cli.value, SourceCLI
	case file.state == Explicit:
		return file.value, SourceFile
	case cli.state == Default:
		return cli.value, SourceDefault
	case file.state == Default:
		return file.value, SourceDefault
	default:
		return fallback, SourceDefault
	}
}
