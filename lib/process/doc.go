// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides the binary entrypoint helper. [Exit]
// centralizes the raw stderr output and os.Exit call that happen after
// the command tree has returned: it propagates an exit code carried by
// the error (the container's own code, or a command's deliberate
// non-zero exit) and prints anything else.
package process
