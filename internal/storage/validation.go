// Package storage provides the data persistence layer for fxdash.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxPreferenceValueLength bounds the size of a stored preference.
const MaxPreferenceValueLength = 1024

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrInvalidPreference  = errors.New("invalid preference")
	ErrPreferenceNotFound = errors.New("preference not found")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validatePreference checks a key/value pair before it is written.
func validatePreference(key, value string) error {
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if !utf8.ValidString(value) {
		return fmt.Errorf("%w: value for %s is not valid UTF-8", ErrInvalidPreference, key)
	}
	if len(value) > MaxPreferenceValueLength {
		return fmt.Errorf("%w: value for %s exceeds %d bytes", ErrInvalidPreference, key, MaxPreferenceValueLength)
	}
	return nil
}
