package domain

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaxUsernameLength = 150
	MinPasswordLength = 8
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72

	FieldUsername     = "username"
	FieldPassword     = "password"
	FieldConfirmation = "confirmation"
)

const msgPasswordTooLong = "This password is too long. It must contain at most 72 bytes."

// FieldErrors collects per-field validation messages for form re-rendering.
type FieldErrors map[string][]string

// Add appends a message for field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Has reports whether any message is recorded for field.
func (f FieldErrors) Has(field string) bool {
	return len(f[field]) > 0
}

func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(f[field], " "))
	}
	return "invalid signup: " + strings.Join(parts, "; ")
}

// SignupForm is the raw signup submission.
type SignupForm struct {
	Username     string
	Password     string
	Confirmation string
}

// Validate applies the username and password rules. It returns nil when the
// form is acceptable and a FieldErrors value otherwise.
func (f SignupForm) Validate() error {
	errs := FieldErrors{}
	username := strings.TrimSpace(f.Username)

	switch {
	case username == "":
		errs.Add(FieldUsername, "This field is required.")
	case utf8.RuneCountInString(username) > MaxUsernameLength:
		errs.Add(FieldUsername, "Ensure this value has at most 150 characters.")
	case !validUsername(username):
		errs.Add(FieldUsername, "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}

	if f.Password == "" {
		errs.Add(FieldPassword, "This field is required.")
	} else {
		if utf8.RuneCountInString(f.Password) < MinPasswordLength {
			errs.Add(FieldPassword, "This password is too short. It must contain at least 8 characters.")
		}
		if len(f.Password) > MaxPasswordBytes {
			errs.Add(FieldPassword, msgPasswordTooLong)
		}
		if isNumeric(f.Password) {
			errs.Add(FieldPassword, "This password is entirely numeric.")
		}
		if username != "" && strings.EqualFold(f.Password, username) {
			errs.Add(FieldPassword, "The password is too similar to the username.")
		}
	}

	if f.Confirmation == "" {
		errs.Add(FieldConfirmation, "This field is required.")
	} else if f.Password != "" && f.Confirmation != f.Password {
		errs.Add(FieldConfirmation, "The two password fields didn't match.")
	}

	if errs.Empty() {
		return nil
	}
	return errs
}

func validUsername(username string) bool {
	for _, r := range username {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		switch r {
		case '@', '.', '+', '-', '_':
			continue
		}
		return false
	}
	return true
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
