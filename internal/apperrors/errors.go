package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
// Every *ValidationError matches it through errors.Is.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvocation indicates an unexpected infrastructure failure (persistence fault,
// misbehaving collaborator). Every *AppError matches it through errors.Is.
var ErrInvocation = errors.New("invocation error")

// AppError wraps an infrastructure failure with an HTTP-ish status code and a message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrInvocation) hold for every AppError.
func (e *AppError) Is(target error) bool {
	return target == ErrInvocation
}

// Warn is a single validation message. Field is empty for global messages.
type Warn struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Args    []any  `json:"args,omitempty"`
}

// IsGlobal reports whether the warn is not bound to a field.
func (w Warn) IsGlobal() bool {
	return w.Field == ""
}

// ValidationError is a recoverable business-rule violation carrying one or more warns
// in the order they were raised.
type ValidationError struct {
	Warns []Warn
}

// NewValidationError creates a ValidationError with a single global message.
func NewValidationError(message string, args ...any) *ValidationError {
	return &ValidationError{Warns: []Warn{{Message: message, Args: args}}}
}

// NewFieldValidationError creates a ValidationError bound to a field.
func NewFieldValidationError(field, message string, args ...any) *ValidationError {
	return &ValidationError{Warns: []Warn{{Field: field, Message: message, Args: args}}}
}

// Global returns the first global warn, falling back to the head warn.
func (e *ValidationError) Global() Warn {
	for _, w := range e.Warns {
		if w.IsGlobal() {
			return w
		}
	}
	if len(e.Warns) == 0 {
		return Warn{Message: ErrValidation.Error()}
	}
	return e.Warns[0]
}

// HasMessage reports whether any warn carries the given message key.
func (e *ValidationError) HasMessage(message string) bool {
	for _, w := range e.Warns {
		if w.Message == message {
			return true
		}
	}
	return false
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Warns))
	for _, w := range e.Warns {
		if w.Field != "" {
			msgs = append(msgs, w.Field+": "+w.Message)
		} else {
			msgs = append(msgs, w.Message)
		}
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(msgs, ", "))
}

// Is lets errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// AsValidation extracts a *ValidationError from an error chain.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// Validator accumulates warns. Check and CheckField keep going; Verify stops
// accumulating further checks once a global rule has failed.
type Validator struct {
	warns   []Warn
	stopped bool
}

// Check records a global warn when valid is false.
func (v *Validator) Check(valid bool, message string, args ...any) *Validator {
	if !valid && !v.stopped {
		v.warns = append(v.warns, Warn{Message: message, Args: args})
	}
	return v
}

// CheckField records a field warn when valid is false.
func (v *Validator) CheckField(valid bool, field, message string, args ...any) *Validator {
	if !valid && !v.stopped {
		v.warns = append(v.warns, Warn{Field: field, Message: message, Args: args})
	}
	return v
}

// Verify records a global warn when valid is false and skips every later rule.
func (v *Validator) Verify(valid bool, message string, args ...any) *Validator {
	if !valid && !v.stopped {
		v.warns = append(v.warns, Warn{Message: message, Args: args})
		v.stopped = true
	}
	return v
}

// Err returns nil when no rule failed.
func (v *Validator) Err() error {
	if len(v.warns) == 0 {
		return nil
	}
	return &ValidationError{Warns: append([]Warn(nil), v.warns...)}
}

// Validate runs fn against a fresh Validator and returns its result.
func Validate(fn func(v *Validator)) error {
	v := &Validator{}
	fn(v)
	return v.Err()
}
