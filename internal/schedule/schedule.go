// Package schedule relates a job's crontab schedule to its threshold.
package schedule

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sznuper/cronwrap/internal/threshold"
)

// samples is how many upcoming activations are inspected for the shortest gap.
const samples = 64

// Report summarises a schedule.
type Report struct {
	Next     time.Time
	MinGap   time.Duration
	Overlaps bool // a run lasting the full threshold would still be going at the next activation
}

// Check parses a standard 5-field cron expression (descriptors such as
// @hourly are accepted) and compares its shortest interval with the
// threshold.
func Check(expr string, limit threshold.Threshold, from time.Time) (Report, error) {
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return Report{}, fmt.Errorf("parsing schedule %q: %w", expr, err)
	}

	next := sched.Next(from)
	if next.IsZero() {
		return Report{}, fmt.Errorf("schedule %q never fires", expr)
	}

	r := Report{Next: next}
	prev := next
	for range samples {
		t := sched.Next(prev)
		if t.IsZero() {
			break
		}
		if gap := t.Sub(prev); r.MinGap == 0 || gap < r.MinGap {
			r.MinGap = gap
		}
		prev = t
	}

	limitDur := time.Duration(limit.Seconds) * time.Second
	r.Overlaps = r.MinGap > 0 && limitDur > r.MinGap
	return r, nil
}
