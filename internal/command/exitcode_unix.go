//go:build unix

package command

import (
	"log/slog"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// exitCode follows the shell convention of 128+N for a process terminated
// by signal N.
func exitCode(exitErr *exec.ExitError, log *slog.Logger) int {
	ws, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return exitErr.ExitCode()
	}
	sig := ws.Signal()
	log.Warn("command terminated by signal", "signal", unix.SignalName(sig), "signum", int(sig))
	return 128 + int(sig)
}
