// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package update

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// PullImage runs "<runtime> pull <image>" with the given output streams.
func PullImage(ctx context.Context, runtime, image string, stdout, stderr io.Writer) error {
	if runtime == "" {
		runtime = "docker"
	}
	cmd := exec.CommandContext(ctx, runtime, "pull", image)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s pull %s: %w", runtime, image, err)
	}
	return nil
}
