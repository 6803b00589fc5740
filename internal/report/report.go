package report

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"

	"github.com/sznuper/cronwrap/internal/outcome"
)

// MaxOutput is the number of trailing characters of each output stream kept
// in a report.
const MaxOutput = 10000

// TruncatedMarker prefixes a stream that was cut to its last MaxOutput
// characters.
const TruncatedMarker = "... START TRUNCATED..."

const timestampLayout = "2006-01-02 15:04:05.000000"

const layout = `{{ .Title }}

COMMAND:
{{ .Command }}

COMMAND STARTED:
{{ dateInZone .Layout .Started "UTC" }} UTC

COMMAND FINISHED:
{{ dateInZone .Layout .Finished "UTC" }} UTC

COMMAND RAN FOR:
{{ .Seconds }} seconds ({{ printf "%.2f" .Hours }} hours)

COMMAND'S TIMEOUT IS SET AT:
{{ .Timeout }}

RETURN CODE WAS:
{{ .ExitCode }}

ERROR OUTPUT:
{{ truncate .Stderr }}

STANDARD OUTPUT:
{{ truncate .Stdout }}`

var reportTmpl = template.Must(template.New("report").Funcs(funcMap()).Parse(layout))

// Data is everything a report is built from. Now is the moment the run was
// observed to finish; the start time is derived from it.
type Data struct {
	Outcome  outcome.Outcome
	Command  string
	Elapsed  time.Duration
	Now      time.Time
	Timeout  string // threshold expression as typed
	ExitCode int
	Stdout   string
	Stderr   string
}

type view struct {
	Title    string
	Command  string
	Layout   string
	Started  time.Time
	Finished time.Time
	Seconds  int64
	Hours    float64
	Timeout  string
	ExitCode int
	Stdout   string
	Stderr   string
}

// Title returns the first line of the report for an outcome.
func Title(o outcome.Outcome) string {
	switch o {
	case outcome.Failure:
		return "CRONWRAP DETECTED FAILURE OR ERROR OUTPUT FOR THE COMMAND:"
	case outcome.Timeout:
		return "CRONWRAP DETECTED A TIMEOUT ON FOLLOWING COMMAND:"
	default:
		return "CRONWRAP RAN COMMAND SUCCESSFULLY:"
	}
}

// Render builds the plain-text report for one run.
func Render(d Data) (string, error) {
	// Whole seconds, truncated; the start time is reconstructed from them.
	seconds := int64(d.Elapsed.Seconds())

	hours := 0.0
	if d.Elapsed.Seconds() >= 60 {
		hours = d.Elapsed.Seconds() / 3600
	}

	v := view{
		Title:    Title(d.Outcome),
		Command:  d.Command,
		Layout:   timestampLayout,
		Started:  d.Now.Add(-time.Duration(seconds) * time.Second),
		Finished: d.Now,
		Seconds:  seconds,
		Hours:    hours,
		Timeout:  d.Timeout,
		ExitCode: d.ExitCode,
		Stdout:   d.Stdout,
		Stderr:   d.Stderr,
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("executing report template: %w", err)
	}
	return buf.String(), nil
}

// Truncate keeps the last MaxOutput characters of s, prefixed with
// TruncatedMarker on its own line. Shorter text is returned unchanged.
func Truncate(s string) string {
	r := []rune(s)
	if len(r) <= MaxOutput {
		return s
	}
	return TruncatedMarker + "\n" + string(r[len(r)-MaxOutput:])
}

func funcMap() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["truncate"] = Truncate
	fm["capitalize"] = capitalize
	return fm
}
