// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides yolobox's CBOR encoding configuration for small
// on-disk state files (currently the update-check cache).
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. Same
// logical data always produces identical bytes.
//
//	err := codec.WriteFile(path, state)
//	err = codec.ReadFile(path, &state)
//
// JSON remains the format for external interfaces (the GitHub API, the
// seccomp profile handed to docker); CBOR is only for files yolobox
// writes and reads itself.
//
// Struct types use `cbor` tags.
package codec
