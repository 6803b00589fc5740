package outcome

import (
	"time"

	"github.com/sznuper/cronwrap/internal/threshold"
)

// Outcome classifies a single wrapped-command run.
type Outcome string

const (
	Success Outcome = "success"
	Failure Outcome = "failure"
	Timeout Outcome = "timeout"
)

// FailureExitCode is what the wrapper exits with after a failed command
// (os.Exit(-1) in 8-bit form).
const FailureExitCode = 255

// Classify decides the outcome of a run. A non-zero exit always wins over an
// overrun; elapsed equal to the threshold is still a success.
func Classify(exitCode int, elapsed time.Duration, limit threshold.Threshold) Outcome {
	switch {
	case exitCode != 0:
		return Failure
	case elapsed.Seconds() > float64(limit.Seconds):
		return Timeout
	default:
		return Success
	}
}

// ExitCode is the wrapper's own process status for this outcome. Only
// failures propagate to the scheduler.
func (o Outcome) ExitCode() int {
	if o == Failure {
		return FailureExitCode
	}
	return 0
}

func (o Outcome) String() string { return string(o) }
