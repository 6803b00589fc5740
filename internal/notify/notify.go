package notify

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sznuper/cronwrap/internal/outcome"
)

// Action is what happens to a rendered report.
type Action int

const (
	ActionNone Action = iota
	ActionPrint
	ActionMail
)

func (a Action) String() string {
	switch a {
	case ActionPrint:
		return "print"
	case ActionMail:
		return "mail"
	default:
		return "none"
	}
}

// Decide picks the action for an outcome. Successful runs are only
// reported when verbose; timeouts and failures always are. Recipients turn
// printing into mailing.
func Decide(o outcome.Outcome, hasRecipients, verbose bool) Action {
	if o == outcome.Success && !verbose {
		return ActionNone
	}
	if hasRecipients {
		return ActionMail
	}
	return ActionPrint
}

// SendError records a failed delivery to one recipient.
type SendError struct {
	Recipient string
	Err       error
}

func (e SendError) Error() string { return fmt.Sprintf("%s: %v", e.Recipient, e.Err) }
func (e SendError) Unwrap() error { return e.Err }

// Delivery describes what the notifier did.
type Delivery struct {
	Action Action
	Sent   []string
	Failed []SendError
}

// Notifier prints reports or mails them, one recipient at a time.
type Notifier struct {
	mailer Mailer
	out    io.Writer
	style  func(string) string
	logger *slog.Logger
}

// New creates a Notifier. mailer may be nil when nothing will be mailed.
func New(mailer Mailer, out io.Writer, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Notifier{mailer: mailer, out: out, logger: logger}
}

// StyleTitle sets a decorator applied to the first line of printed reports.
func (n *Notifier) StyleTitle(fn func(string) string) {
	n.style = fn
}

// Deliver performs the action Decide picks for the outcome. Delivery errors
// are collected, never returned; they are logged at error level when
// verbose. The returned error is only set when printing fails.
func (n *Notifier) Deliver(o outcome.Outcome, subject, body string, recipients []string, verbose bool) (Delivery, error) {
	d := Delivery{Action: Decide(o, len(recipients) > 0, verbose)}
	n.logger.Info("delivering report", "outcome", o, "action", d.Action, "recipients", len(recipients))

	switch d.Action {
	case ActionPrint:
		if err := n.print(body); err != nil {
			return d, fmt.Errorf("printing report: %w", err)
		}
	case ActionMail:
		n.mail(&d, subject, body, recipients, verbose)
	}

	return d, nil
}

// SelfTest mails the fixed test message to every recipient.
func (n *Notifier) SelfTest(subject, body string, recipients []string, verbose bool) Delivery {
	d := Delivery{Action: ActionMail}
	n.logger.Info("sending test mail", "recipients", len(recipients))
	n.mail(&d, subject, body, recipients, verbose)
	return d
}

func (n *Notifier) mail(d *Delivery, subject, body string, recipients []string, verbose bool) {
	for _, rcpt := range recipients {
		if n.mailer == nil {
			d.Failed = append(d.Failed, SendError{Recipient: rcpt, Err: fmt.Errorf("no mail transport configured")})
			continue
		}

		n.logger.Debug("sending mail", "recipient", rcpt, "subject", subject)
		if err := n.mailer.Send(rcpt, subject, body); err != nil {
			d.Failed = append(d.Failed, SendError{Recipient: rcpt, Err: err})
			if verbose {
				n.logger.Error("mail delivery failed", "recipient", rcpt, "error", err)
			} else {
				n.logger.Debug("mail delivery failed", "recipient", rcpt, "error", err)
			}
			continue
		}
		d.Sent = append(d.Sent, rcpt)
	}
}

func (n *Notifier) print(report string) error {
	if n.style != nil {
		title, rest, found := strings.Cut(report, "\n")
		report = n.style(title)
		if found {
			report += "\n" + rest
		}
	}
	_, err := fmt.Fprintln(n.out, report)
	return err
}
