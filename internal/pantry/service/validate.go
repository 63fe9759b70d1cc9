package service

import (
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/pantry/internal/pantry/domain"
)

// checkText validates a required free-text field and returns it trimmed.
func checkText(v *ValidationError, field, value string, max int) string {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		v.Add(field, MsgBlank)
	case utf8.RuneCountInString(value) > max:
		v.Add(field, MsgTooLong)
	}
	return value
}

// checkEmail normalizes and validates an address.
func checkEmail(v *ValidationError, field, value string) string {
	email := domain.NormalizeEmail(value)
	switch {
	case email == "":
		v.Add(field, MsgRequired)
	case utf8.RuneCountInString(email) > domain.MaxEmailLength:
		v.Add(field, MsgTooLong)
	case !domain.ValidEmail(email):
		v.Add(field, MsgInvalidEmail)
	}
	return email
}

func checkPassword(v *ValidationError, field, value string) {
	n := utf8.RuneCountInString(value)
	switch {
	case value == "":
		v.Add(field, MsgBlank)
	case n < domain.MinPasswordLength:
		v.Add(field, MsgPasswordShort)
	case n > domain.MaxPasswordLength:
		v.Add(field, MsgPasswordLong)
	}
}

// requireFields adds MsgRequired for each named field whose value is false.
func requireFields(v *ValidationError, present map[string]bool) {
	for field, ok := range present {
		if !ok {
			v.Add(field, MsgRequired)
		}
	}
}
