package runner

import (
	"time"

	"github.com/sznuper/cronwrap/internal/command"
	"github.com/sznuper/cronwrap/internal/notify"
	"github.com/sznuper/cronwrap/internal/outcome"
)

// Mode is what an invocation turned out to be.
type Mode string

const (
	ModeNoop     Mode = "noop"      // no command, no recipients
	ModeSelfTest Mode = "self-test" // no command, recipients: send a test mail
	ModeRun      Mode = "run"
)

// Result captures one invocation of the pipeline. Errors are stored in
// Err/ErrStage rather than returned, so the caller always has something to
// display.
type Result struct {
	RunID    string
	Mode     Mode
	Command  *command.Result
	Outcome  outcome.Outcome
	Report   string
	Subject  string
	Delivery notify.Delivery
	Duration time.Duration
	Err      error
	ErrStage string // "config", "exec", "render", "notify"
}

// ErrorExitCode is the wrapper's status for its own errors, as opposed to
// the wrapped command failing.
const ErrorExitCode = 1

// ExitCode is the status the wrapper process should exit with.
func (r Result) ExitCode() int {
	if r.Err != nil {
		return ErrorExitCode
	}
	if r.Mode != ModeRun {
		return 0
	}
	return r.Outcome.ExitCode()
}
