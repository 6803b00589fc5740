package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sznuper/cronwrap/internal/notify"
	"github.com/sznuper/cronwrap/internal/schedule"
	"github.com/sznuper/cronwrap/internal/threshold"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the cronwrap configuration",
	Long:  "Checks the config file, the threshold, the recipients, and whether the threshold lets runs of the configured schedule overlap.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := setupLogger()

		cfg, err := loadConfig(cmd, logger)
		if err != nil {
			return err
		}

		var problems []error
		if err := cfg.Validate(); err != nil {
			problems = append(problems, err)
		}

		limit, err := threshold.Parse(timeoutFor(cmd, cfg))
		if err != nil {
			problems = append(problems, err)
		}

		recipients := recipientsFor(cmd, cfg)
		if err := notify.ValidateRecipients(recipients); err != nil {
			problems = append(problems, err)
		}

		if cfg.Schedule != "" && limit.Expr != "" {
			r, err := schedule.Check(cfg.Schedule, limit, time.Now())
			switch {
			case err != nil:
				problems = append(problems, err)
			case r.Overlaps:
				printErr("warning: timeout %s exceeds the shortest schedule interval %s; runs may overlap", limit.Expr, r.MinGap)
			default:
				logger.Info("schedule checked", "next", r.Next, "min_gap", r.MinGap)
			}
		}

		if len(problems) > 0 {
			return errors.Join(problems...)
		}

		transport := "mail command " + cfg.Mail.Command
		if cfg.Mail.URL != "" {
			transport = "shoutrrr url"
		}
		fmt.Printf("config OK (host %s, timeout %s, %d recipient(s), via %s)\n", cfg.Hostname, limit.Expr, len(recipients), transport)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringP("emails", "e", "", "comma-separated addresses to check instead of the config's")
	validateCmd.Flags().StringP("time", "t", "", "threshold to check instead of the config's")
	rootCmd.AddCommand(validateCmd)
}
