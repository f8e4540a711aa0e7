// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/bureau-foundation/yolobox/lib/process"
)

func main() {
	process.Exit(run())
}

func run() error {
	return rootCommand(newEnvironment()).Execute(os.Args[1:])
}
