//go:build !unix

package command

import (
	"log/slog"
	"os/exec"
)

// exitCode reports whatever the platform reports.
func exitCode(exitErr *exec.ExitError, _ *slog.Logger) int {
	return exitErr.ExitCode()
}
