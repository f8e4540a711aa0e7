// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Yolobox runs an AI coding agent inside a locked-down docker container.
//
// The project directory is mounted at /app, every capability except the
// few the entrypoint needs is dropped, a seccomp profile blocks
// escape-prone syscalls, and an in-container firewall limits outbound
// traffic to an allowlist of domains. Settings come from command-line
// flags and an optional .yolobox.yaml in the project directory; an
// explicit flag always wins over the file.
//
// Subcommands:
//
//	yolobox [flags] [agent] [-- agent-args...]   run the agent
//	yolobox validate [flags] [agent]             pre-flight checks
//	yolobox config show [flags] [agent]          print the merged policy
//	yolobox update                               update binary and image
//	yolobox version                              print version information
package main
