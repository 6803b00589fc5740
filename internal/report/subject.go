package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/sznuper/cronwrap/internal/outcome"
)

// Default mail subject templates. Host is the (injected) host name.
const (
	DefaultSuccessSubject = `Host {{ capitalize .Host }}: cronwrap ran command successfully!`
	DefaultTimeoutSubject = `Host {{ capitalize .Host }}: cronwrap detected a timeout!`
	DefaultFailureSubject = `Host {{ capitalize .Host }}: cronwrap detected a failure!`
	DefaultTestSubject    = `Host {{ capitalize .Host }}: cronwrap test mail`
)

// TestBody is the message sent in self-test mode.
const TestBody = "Just testing. Please ignore this email."

// Subjects holds one subject template per kind of mail. Empty fields fall
// back to the defaults.
type Subjects struct {
	Success string
	Timeout string
	Failure string
	Test    string
}

// SubjectData is available to subject templates.
type SubjectData struct {
	Host    string
	Outcome string
	Command string
}

// For picks the template for an outcome.
func (s Subjects) For(o outcome.Outcome) string {
	switch o {
	case outcome.Failure:
		return pick(s.Failure, DefaultFailureSubject)
	case outcome.Timeout:
		return pick(s.Timeout, DefaultTimeoutSubject)
	default:
		return pick(s.Success, DefaultSuccessSubject)
	}
}

// ForTest picks the self-test template.
func (s Subjects) ForTest() string {
	return pick(s.Test, DefaultTestSubject)
}

// Subject renders a subject template. Line breaks are collapsed since mail
// subjects are single-line.
func Subject(tmplStr string, data SubjectData) (string, error) {
	t, err := template.New("subject").Funcs(funcMap()).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing subject template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing subject template: %w", err)
	}

	return strings.Join(strings.Fields(buf.String()), " "), nil
}

func pick(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

// capitalize upper-cases the first character and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
