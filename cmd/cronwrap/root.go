package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sznuper/cronwrap/internal/config"
	"github.com/sznuper/cronwrap/internal/notify"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "cronwrap",
	Short: "Cron job wrapper with error reporting and run-time alerts",
	Long: `A cron job wrapper that wraps jobs and enables better error reporting and command timeouts.

The command runs through the shell. Failures are always reported, runs longer
than --time are reported as timeouts (the command is never killed), and
successful runs are reported with --verbose. Reports are mailed to --emails,
or printed when no recipients are set.`,
	Example: `  # Mail a timeout alert when the job runs longer than one second:
  cronwrap -c "sleep 2" -t 1s -e cron@example.com

  # Mail an error alert:
  cronwrap -c "blah" -e cron@example.com

  # Send no report at all:
  cronwrap -c "ls" -e cron@example.com

  # Mail a report even on success:
  cronwrap -c "ls" -e cron@example.com -v

  # Send a test mail:
  cronwrap -e cron@example.com`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWrapped,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	registerOptionFlags(rootCmd)

	f := rootCmd.Flags()
	f.StringP("cmd", "c", "", "command to run through the shell, e.g. -c \"ls -la\"")
	f.StringP("emails", "e", "", "comma-separated addresses to mail if the command fails or exceeds --time; without --cmd a test mail is sent")
	f.StringP("time", "t", "", "maximum expected running time, e.g. 2h, 2m, 30s; the command keeps running when exceeded (default from config, else 1h)")
	f.StringP("verbose", "v", verboseDisabled, "also report successful runs")
	f.Lookup("verbose").NoOptDefVal = "enabled"
}

func setupLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}

	if isatty.IsTerminal(os.Stderr.Fd()) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

// loadConfig resolves the config file and applies override flags.
func loadConfig(cmd *cobra.Command, logger *slog.Logger) (*config.Config, error) {
	cfg, path, err := config.Resolve(cfgFile)
	if err != nil {
		return nil, err
	}
	applyOptionFlags(cmd, cfg)
	if path != "" {
		logger.Debug("config loaded", "path", path)
	} else {
		logger.Debug("no config file, using defaults")
	}
	return cfg, nil
}

// recipientsFor picks --emails when given, otherwise the config's list.
func recipientsFor(cmd *cobra.Command, cfg *config.Config) []string {
	if cmd.Flags().Changed("emails") {
		raw, _ := cmd.Flags().GetString("emails")
		return notify.ParseRecipients(raw)
	}
	return cfg.Emails
}

// timeoutFor picks --time when given, otherwise the config's timeout.
func timeoutFor(cmd *cobra.Command, cfg *config.Config) string {
	if cmd.Flags().Changed("time") {
		t, _ := cmd.Flags().GetString("time")
		return t
	}
	return cfg.Timeout
}

var titleStyle = lipgloss.NewStyle().Bold(true)

// newNotifier prints to stdout, with a bold title when it is a terminal.
func newNotifier(cfg *config.Config, logger *slog.Logger) *notify.Notifier {
	n := notify.New(cfg.Mailer(), os.Stdout, logger)
	if isatty.IsTerminal(os.Stdout.Fd()) {
		n.StyleTitle(func(s string) string { return titleStyle.Render(s) })
	}
	return n
}

func printErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
