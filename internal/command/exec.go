package command

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
	"unicode"
)

// DefaultShell interprets the command string, so pipes, redirections and
// other shell syntax behave as they do interactively.
const DefaultShell = "/bin/sh"

// ErrStart marks wrapper-level failures: the shell could not be launched or
// its output could not be captured. It is distinct from the wrapped command
// exiting non-zero, which is reported through Result.ExitCode.
var ErrStart = errors.New("starting command")

// Result holds the outcome of one wrapped command execution.
type Result struct {
	Command  string
	ExitCode int
	Elapsed  time.Duration
	Stdout   string
	Stderr   string
}

// Options configures command execution.
type Options struct {
	Shell  string
	Dir    string
	Env    []string // appended to the inherited environment
	Logger *slog.Logger
}

// Run executes cmdText through the shell and waits for it to finish.
// Non-zero exit codes are captured (not treated as errors). The command is
// never given a deadline and is never killed.
func Run(cmdText string, opts Options) (*Result, error) {
	shell := opts.Shell
	if shell == "" {
		shell = DefaultShell
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	cmd := exec.Command(shell, "-c", cmdText)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(cmd.Environ(), opts.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug("starting command", "shell", shell, "cmd", cmdText)

	// Run returns only after the process exits and both streams are drained.
	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	result := &Result{
		Command: cmdText,
		Elapsed: elapsed,
		Stdout:  decode(stdout.Bytes()),
		Stderr:  decode(stderr.Bytes()),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w %q: %w", ErrStart, cmdText, err)
		}
		result.ExitCode = exitCode(exitErr, log)
	}

	log.Debug("command finished", "exit_code", result.ExitCode, "elapsed", elapsed)
	return result, nil
}

func decode(b []byte) string {
	return strings.TrimRightFunc(strings.ToValidUTF8(string(b), "�"), unicode.IsSpace)
}
