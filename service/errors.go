package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrRecordNotFound       = errors.New("record not found")
	ErrEditConflict         = errors.New("edit conflict")
	ErrBadRequest           = errors.New("bad request")
	ErrContentTooLarge      = errors.New("content too large")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)

// ValidationError carries the field-level failures recorded by a validator,
// so callers can distinguish a validation failure from other errors and
// surface the individual field messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%q %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

func (s *service) failedValidation(errorMap map[string]string) error {
	return &ValidationError{Fields: errorMap}
}
