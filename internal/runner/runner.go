package runner

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sznuper/cronwrap/internal/command"
	"github.com/sznuper/cronwrap/internal/config"
	"github.com/sznuper/cronwrap/internal/notify"
	"github.com/sznuper/cronwrap/internal/outcome"
	"github.com/sznuper/cronwrap/internal/report"
	"github.com/sznuper/cronwrap/internal/threshold"
)

// RunIDEnv is set in the wrapped command's environment.
const RunIDEnv = "CRONWRAP_RUN_ID"

// Job is one invocation's request.
type Job struct {
	Command    string
	Timeout    string // threshold expression
	Recipients []string
	Verbose    bool
}

// Runner orchestrates the execute → classify → render → notify pipeline.
type Runner struct {
	cfg      *config.Config
	notifier *notify.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a Runner with the given config, notifier and logger.
func New(cfg *config.Config, notifier *notify.Notifier, logger *slog.Logger) *Runner {
	return &Runner{cfg: cfg, notifier: notifier, logger: logger, now: time.Now}
}

// Run executes a job through the full pipeline.
func (r *Runner) Run(job Job) Result {
	result := Result{RunID: uuid.NewString()}
	log := r.logger.With("run_id", result.RunID)
	start := time.Now()

	fail := func(stage string, err error) Result {
		result.Err = err
		result.ErrStage = stage
		result.Duration = time.Since(start)
		log.Debug(stage+" failed", "error", err)
		return result
	}

	// Stage 1: Parse threshold. Nothing runs with a bad configuration.
	limit, err := threshold.Parse(job.Timeout)
	if err != nil {
		return fail("config", err)
	}
	log.Debug("threshold parsed", "expr", limit.Expr, "seconds", limit.Seconds)

	// Local mailboxes such as "root" are normal for cron; format checks
	// belong to `cronwrap validate`.
	if err := notify.ValidateRecipients(job.Recipients); err != nil {
		log.Debug("recipients are not all email addresses", "error", err)
	}

	subjectData := report.SubjectData{Host: r.cfg.Hostname, Command: job.Command}
	subjects := r.cfg.ReportSubjects()

	if job.Command == "" {
		if len(job.Recipients) == 0 {
			result.Mode = ModeNoop
			result.Duration = time.Since(start)
			log.Info("no command and no recipients, nothing to do")
			return result
		}

		result.Mode = ModeSelfTest
		result.Subject = r.subject(log, subjects.ForTest(), report.DefaultTestSubject, subjectData)
		log.Info("sending test mail", "recipients", job.Recipients)
		result.Delivery = r.notifier.SelfTest(result.Subject, report.TestBody, job.Recipients, job.Verbose)
		result.Duration = time.Since(start)
		return result
	}
	result.Mode = ModeRun

	// Stage 2: Execute the command. Never cancelled; the threshold is only
	// compared afterwards.
	log.Info("executing command", "cmd", job.Command, "threshold", limit.Expr)
	cmdResult, err := command.Run(job.Command, command.Options{
		Shell:  r.cfg.Shell,
		Env:    []string{RunIDEnv + "=" + result.RunID},
		Logger: log,
	})
	if err != nil {
		return fail("exec", err)
	}
	result.Command = cmdResult
	now := r.now()

	// Stage 3: Classify.
	result.Outcome = outcome.Classify(cmdResult.ExitCode, cmdResult.Elapsed, limit)
	log.Info("command classified", "outcome", result.Outcome, "exit_code", cmdResult.ExitCode, "elapsed", cmdResult.Elapsed)

	// Stage 4: Render.
	result.Report, err = report.Render(report.Data{
		Outcome:  result.Outcome,
		Command:  cmdResult.Command,
		Elapsed:  cmdResult.Elapsed,
		Now:      now,
		Timeout:  limit.Expr,
		ExitCode: cmdResult.ExitCode,
		Stdout:   cmdResult.Stdout,
		Stderr:   cmdResult.Stderr,
	})
	if err != nil {
		return fail("render", err)
	}

	subjectData.Outcome = result.Outcome.String()
	result.Subject = r.subject(log, subjects.For(result.Outcome), report.Subjects{}.For(result.Outcome), subjectData)

	// Stage 5: Print, mail or stay quiet.
	result.Delivery, err = r.notifier.Deliver(result.Outcome, result.Subject, result.Report, job.Recipients, job.Verbose)
	if err != nil {
		return fail("notify", err)
	}

	result.Duration = time.Since(start)
	log.Info("run completed", "outcome", result.Outcome, "action", result.Delivery.Action,
		"sent", len(result.Delivery.Sent), "failed", len(result.Delivery.Failed))
	return result
}

// subject renders a subject template, falling back to the built-in one so a
// broken override never keeps a report from being sent.
func (r *Runner) subject(log *slog.Logger, tmpl, fallback string, data report.SubjectData) string {
	s, err := report.Subject(tmpl, data)
	if err == nil {
		return s
	}
	log.Warn("subject template failed, using default", "error", err)
	s, err = report.Subject(fallback, data)
	if err != nil {
		return "cronwrap report from " + data.Host
	}
	return s
}
