package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/sznuper/cronwrap/internal/notify"
	"github.com/sznuper/cronwrap/internal/runner"
)

// exitCode is set by commands that finish without error but still need a
// non-zero process status.
var exitCode int

func runWrapped(cmd *cobra.Command, args []string) error {
	logger := setupLogger()

	cfg, err := loadConfig(cmd, logger)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cmdText, _ := cmd.Flags().GetString("cmd")
	verboseVal, _ := cmd.Flags().GetString("verbose")
	verbose := isVerbose(verboseVal)

	r := runner.New(cfg, newNotifier(cfg, logger), logger)
	res := r.Run(runner.Job{
		Command:    cmdText,
		Timeout:    timeoutFor(cmd, cfg),
		Recipients: recipientsFor(cmd, cfg),
		Verbose:    verbose,
	})

	if res.Err != nil {
		return res.Err
	}
	if verbose {
		printResult(res)
	}

	exitCode = res.ExitCode()
	return nil
}

// printResult summarises mail delivery on stderr. Printed reports go to
// stdout and need no summary.
func printResult(r runner.Result) {
	if r.Delivery.Action != notify.ActionMail {
		return
	}

	label := "Mailed"
	if r.Mode == runner.ModeSelfTest {
		label = "Test mail sent"
	}
	if len(r.Delivery.Sent) > 0 {
		printErr("✓ %s: %s", label, strings.Join(r.Delivery.Sent, ", "))
	}
	for _, f := range r.Delivery.Failed {
		printErr("✗ Mail to %s failed: %s", f.Recipient, f.Err)
	}
}
