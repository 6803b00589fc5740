package config

import (
	"fmt"
	"os"

	"github.com/a8m/envsubst"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/sznuper/cronwrap/internal/command"
	"github.com/sznuper/cronwrap/internal/notify"
	"github.com/sznuper/cronwrap/internal/report"
	"github.com/sznuper/cronwrap/internal/threshold"
)

type Config struct {
	Hostname string   `yaml:"hostname"`
	Shell    string   `yaml:"shell"`
	Timeout  string   `yaml:"timeout" flag:"-" validate:"omitempty,threshold"`
	Emails   []string `yaml:"emails"`
	Schedule string   `yaml:"schedule" validate:"omitempty,cron"`
	Mail     Mail     `yaml:"mail"`
	Subjects Subjects `yaml:"subjects"`
}

// Mail selects the delivery transport. URL (any Shoutrrr service URL,
// usually smtp://) takes precedence over Command.
type Mail struct {
	URL            string `yaml:"url" validate:"omitempty,url"`
	RecipientParam string `yaml:"recipient_param"`
	Command        string `yaml:"command"`
}

type Subjects struct {
	Success string `yaml:"success"`
	Timeout string `yaml:"timeout"`
	Failure string `yaml:"failure"`
	Test    string `yaml:"test"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Shell == "" {
		c.Shell = command.DefaultShell
	}
	if c.Timeout == "" {
		c.Timeout = threshold.Default
	}
	if c.Mail.Command == "" {
		c.Mail.Command = notify.DefaultMailCommand
	}
	if c.Mail.RecipientParam == "" {
		c.Mail.RecipientParam = notify.DefaultRecipientParam
	}
}

// Mailer builds the configured mail transport.
func (c *Config) Mailer() notify.Mailer {
	if c.Mail.URL != "" {
		return notify.ShoutrrrMailer{URL: c.Mail.URL, RecipientParam: c.Mail.RecipientParam}
	}
	return notify.CommandMailer{Command: c.Mail.Command}
}

// ReportSubjects converts the subject overrides for the report package.
func (c *Config) ReportSubjects() report.Subjects {
	return report.Subjects(c.Subjects)
}

// Validate checks field formats and that subject templates parse.
func (c *Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	subjects := c.ReportSubjects()
	for name, tmpl := range map[string]string{
		"success": subjects.Success,
		"timeout": subjects.Timeout,
		"failure": subjects.Failure,
		"test":    subjects.Test,
	} {
		if tmpl == "" {
			continue
		}
		if _, err := report.Subject(tmpl, report.SubjectData{Host: c.Hostname}); err != nil {
			return fmt.Errorf("subjects.%s: %w", name, err)
		}
	}

	return nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("threshold", func(fl validator.FieldLevel) bool {
		_, err := threshold.Parse(fl.Field().String())
		return err == nil
	})
	return v
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	data, err = envsubst.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("expanding env vars: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}
