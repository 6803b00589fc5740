package main

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
)

// executeRoot runs the root command with fresh flag state and returns the
// status main would exit with.
func executeRoot(t *testing.T, args ...string) (int, error) {
	t.Helper()
	// Keep config search away from the developer's own files.
	t.Setenv("HOME", t.TempDir())

	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.Flags().VisitAll(reset)
	rootCmd.PersistentFlags().VisitAll(reset)
	exitCode = 0

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return exitCode, err
}

func TestRootCommand_FailureExits255(t *testing.T) {
	code, err := executeRoot(t, "-c", "exit 7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 255 {
		t.Errorf("exit code = %d, want 255", code)
	}
}

func TestRootCommand_TimeoutExitsZero(t *testing.T) {
	code, err := executeRoot(t, "-c", "sleep 2", "-t", "1s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
}

func TestRootCommand_QuietSuccessExitsZero(t *testing.T) {
	code, err := executeRoot(t, "-c", "true")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
}

func TestRootCommand_InvalidThresholdIsError(t *testing.T) {
	_, err := executeRoot(t, "-c", "true", "-t", "1d")
	if err == nil {
		t.Fatal("expected configuration error")
	}
}

func TestRootCommand_InvalidSubjectConfigIsError(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.yaml"
	if err := writeFile(path, "subjects:\n  failure: \"{{ .Host | nope }}\"\n"); err != nil {
		t.Fatal(err)
	}
	_, err := executeRoot(t, "--config", path, "-c", "exit 1")
	if err == nil {
		t.Fatal("expected config validation error before running")
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
