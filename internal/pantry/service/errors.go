package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrAuthentication = errors.New("unable to log in with provided credentials")
	ErrForbidden      = errors.New("permission denied")
)

// Field error messages shared by the validators.
const (
	MsgRequired      = "This field is required."
	MsgBlank         = "This field may not be blank."
	MsgInvalidEmail  = "Enter a valid email address."
	MsgEmailTaken    = "user with this email already exists."
	MsgNameTaken     = "ingredient with this name already exists."
	MsgPasswordShort = "Ensure this field has at least 5 characters."
	MsgPasswordLong  = "Ensure this field has no more than 128 characters."
	MsgTooLong       = "Ensure this field has no more than 255 characters."
	MsgAmountMin     = "Ensure this value is greater than or equal to 1."
	MsgMinutesMin    = "Ensure this value is greater than or equal to 0."
	MsgPasswordMatch = "The two password fields didn't match."
)

// ValidationError carries per-field reasons for rejecting input.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns a ValidationError with a single field set.
func NewValidationError(field, msg string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, msg)
	return v
}

// Add records msg for field. The first reason recorded for a field wins.
func (v *ValidationError) Add(field, msg string) {
	if v.Fields == nil {
		v.Fields = make(map[string]string)
	}
	if _, ok := v.Fields[field]; !ok {
		v.Fields[field] = msg
	}
}

// Err returns v when any field was recorded and nil otherwise.
func (v *ValidationError) Err() error {
	if v == nil || len(v.Fields) == 0 {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + v.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
