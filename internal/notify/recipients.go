package notify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseRecipients splits a comma-separated address list. Entries are
// trimmed and blanks dropped.
func ParseRecipients(raw string) []string {
	var out []string
	for _, field := range strings.Split(raw, ",") {
		if addr := strings.TrimSpace(field); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// ValidateRecipients reports every address that is not a valid email.
func ValidateRecipients(addrs []string) error {
	var errs []error
	for _, addr := range addrs {
		if err := validate.Var(addr, "required,email"); err != nil {
			errs = append(errs, fmt.Errorf("invalid email address %q", addr))
		}
	}
	return errors.Join(errs...)
}
