// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the yolobox CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in cmd/yolobox and
// dispatched via [Command.Execute], which handles flag parsing, subcommand
// routing, and structured help output with examples. A command with both
// Run and Subcommands treats an unmatched first positional argument as
// input to Run; the root command uses this to accept an agent name.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
//
// [NewCommandLogger] builds the slog logger shared by all commands, and
// [ExitError] lets a command exit non-zero after printing its own output.
package cli
