package auth

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidationErrors lists every problem found in a request, in field order.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "; ")
}

func (r RegisterRequest) Validate() error {
	var errs ValidationErrors

	name := strings.TrimSpace(r.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		errs = append(errs, "name must be between 2 and 100 characters")
	}
	if !emailPattern.MatchString(strings.TrimSpace(r.Email)) {
		errs = append(errs, "a valid email is required")
	}
	if len(r.Password) < 6 {
		errs = append(errs, "password must be at least 6 characters")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r LoginRequest) Validate() error {
	var errs ValidationErrors

	if !emailPattern.MatchString(strings.TrimSpace(r.Email)) {
		errs = append(errs, "a valid email is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
