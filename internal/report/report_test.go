package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sznuper/cronwrap/internal/outcome"
)

var now = time.Date(2024, 3, 9, 14, 30, 5, 123456000, time.UTC)

func TestRender_Layout(t *testing.T) {
	got, err := Render(Data{
		Outcome:  outcome.Timeout,
		Command:  "sleep 2",
		Elapsed:  2*time.Second + 400*time.Millisecond,
		Now:      now,
		Timeout:  "1s",
		ExitCode: 0,
		Stdout:   "out",
		Stderr:   "",
	})
	require.NoError(t, err)

	want := `CRONWRAP DETECTED A TIMEOUT ON FOLLOWING COMMAND:

COMMAND:
sleep 2

COMMAND STARTED:
2024-03-09 14:30:03.123456 UTC

COMMAND FINISHED:
2024-03-09 14:30:05.123456 UTC

COMMAND RAN FOR:
2 seconds (0.00 hours)

COMMAND'S TIMEOUT IS SET AT:
1s

RETURN CODE WAS:
0

ERROR OUTPUT:


STANDARD OUTPUT:
out`
	assert.Equal(t, want, got)
}

func TestRender_Titles(t *testing.T) {
	for o, title := range map[outcome.Outcome]string{
		outcome.Success: "CRONWRAP RAN COMMAND SUCCESSFULLY:",
		outcome.Timeout: "CRONWRAP DETECTED A TIMEOUT ON FOLLOWING COMMAND:",
		outcome.Failure: "CRONWRAP DETECTED FAILURE OR ERROR OUTPUT FOR THE COMMAND:",
	} {
		got, err := Render(Data{Outcome: o, Now: now})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, title+"\n"), "outcome %s: report starts %q", o, got[:40])
	}
}

func TestRender_Hours(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{59*time.Second + 900*time.Millisecond, "59 seconds (0.00 hours)"},
		{60 * time.Second, "60 seconds (0.02 hours)"},
		{5400 * time.Second, "5400 seconds (1.50 hours)"},
		{2 * time.Hour, "7200 seconds (2.00 hours)"},
	}
	for _, tt := range tests {
		got, err := Render(Data{Outcome: outcome.Success, Elapsed: tt.elapsed, Now: now})
		require.NoError(t, err)
		assert.Contains(t, got, "COMMAND RAN FOR:\n"+tt.want+"\n")
	}
}

func TestRender_StartReconstructedFromTruncatedSeconds(t *testing.T) {
	got, err := Render(Data{Outcome: outcome.Success, Elapsed: 90*time.Second + 999*time.Millisecond, Now: now})
	require.NoError(t, err)
	// 90.999s truncates to 90s: 14:30:05 - 90s = 14:28:35.
	assert.Contains(t, got, "COMMAND STARTED:\n2024-03-09 14:28:35.123456 UTC\n")
}

func TestRender_ConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	got, err := Render(Data{Outcome: outcome.Success, Now: now.In(loc)})
	require.NoError(t, err)
	assert.Contains(t, got, "COMMAND FINISHED:\n2024-03-09 14:30:05.123456 UTC\n")
}

func TestRender_Idempotent(t *testing.T) {
	d := Data{
		Outcome:  outcome.Failure,
		Command:  "false",
		Elapsed:  3 * time.Second,
		Now:      now,
		Timeout:  "1h",
		ExitCode: 1,
		Stdout:   "a",
		Stderr:   "b",
	}
	first, err := Render(d)
	require.NoError(t, err)
	second, err := Render(d)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRender_NoEscaping(t *testing.T) {
	got, err := Render(Data{Outcome: outcome.Failure, Command: `echo "<a & b>" > /tmp/x`, Now: now, ExitCode: 2})
	require.NoError(t, err)
	assert.Contains(t, got, "COMMAND:\necho \"<a & b>\" > /tmp/x\n")
	assert.Contains(t, got, "RETURN CODE WAS:\n2\n")
}

func TestRender_TruncatesStreams(t *testing.T) {
	long := strings.Repeat("x", 5) + strings.Repeat("y", MaxOutput)
	got, err := Render(Data{Outcome: outcome.Success, Now: now, Stdout: long, Stderr: long})
	require.NoError(t, err)
	block := TruncatedMarker + "\n" + strings.Repeat("y", MaxOutput)
	assert.Contains(t, got, "ERROR OUTPUT:\n"+block+"\n\nSTANDARD OUTPUT:\n")
	assert.True(t, strings.HasSuffix(got, "STANDARD OUTPUT:\n"+block))
	assert.NotContains(t, got, "x")
}

func TestTruncate(t *testing.T) {
	exact := strings.Repeat("a", MaxOutput)
	assert.Equal(t, exact, Truncate(exact))
	assert.Equal(t, "", Truncate(""))

	over := "HEAD" + exact
	assert.Equal(t, TruncatedMarker+"\n"+exact, Truncate(over))
}

func TestTruncate_CountsCharactersNotBytes(t *testing.T) {
	s := strings.Repeat("é", MaxOutput)
	assert.Equal(t, s, Truncate(s), "multi-byte text at the limit must not be cut")

	got := Truncate("ab" + s)
	assert.Equal(t, TruncatedMarker+"\n"+s, got)
}
