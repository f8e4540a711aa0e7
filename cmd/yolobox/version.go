// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/bureau-foundation/yolobox/cmd/yolobox/cli"
	"github.com/bureau-foundation/yolobox/lib/version"
)

func versionCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(args []string) error {
			fmt.Fprintf(env.stdout, "yolobox %s\n", version.Full())
			return nil
		},
	}
}
