package threshold

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// ErrInvalid is returned for expressions that are not <digits><h|m|s>.
var ErrInvalid = errors.New("invalid time expression")

// Default is the threshold used when neither config nor flags set one.
const Default = "1h"

var pattern = regexp.MustCompile(`^(\d+)([hms])$`)

// Threshold is the expected maximum run time of a wrapped command. It is
// only compared against, never enforced.
type Threshold struct {
	Expr    string // as typed, shown in reports
	Seconds int64
}

// Parse parses a compact duration such as "2h", "90m" or "30s".
func Parse(expr string) (Threshold, error) {
	m := pattern.FindStringSubmatch(expr)
	if m == nil {
		return Threshold{}, fmt.Errorf("%w %q: want <number><h|m|s>, e.g. 1h, 30m, 45s", ErrInvalid, expr)
	}

	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return Threshold{}, fmt.Errorf("%w %q: %v", ErrInvalid, expr, err)
	}

	var unit int64
	switch m[2] {
	case "h":
		unit = 3600
	case "m":
		unit = 60
	default:
		unit = 1
	}
	if n > math.MaxInt64/unit {
		return Threshold{}, fmt.Errorf("%w %q: value out of range", ErrInvalid, expr)
	}

	return Threshold{Expr: expr, Seconds: n * unit}, nil
}

func (t Threshold) String() string { return t.Expr }
