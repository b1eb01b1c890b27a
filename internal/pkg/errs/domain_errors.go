package errs

import (
	"errors"
	"fmt"
)

// Error categories shared by every layer. The HTTP layer maps each category to one status code.
var (
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("conflict")
	ErrPolicyViolation   = errors.New("policy violation")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotFound          = errors.New("not found")
)

// RuleError names the business rule that rejected an operation.
// errors.Is matches both the category and the rule it was derived from.
type RuleError struct {
	Rule     string
	Message  string
	category error
	origin   *RuleError
}

func NewRule(category error, rule, msg string) *RuleError {
	return &RuleError{Rule: rule, Message: msg, category: category}
}

func (e *RuleError) Error() string {
	return e.Message
}

func (e *RuleError) Category() error {
	return e.category
}

func (e *RuleError) Is(target error) bool {
	if target == e.category {
		return true
	}
	t, ok := target.(*RuleError)
	if !ok {
		return false
	}
	return t == e || (e.origin != nil && t == e.origin)
}

// With returns a copy of the rule carrying extra detail in its message.
func (e *RuleError) With(format string, args ...any) *RuleError {
	origin := e
	if e.origin != nil {
		origin = e.origin
	}
	return &RuleError{
		Rule:     e.Rule,
		Message:  e.Message + ": " + fmt.Sprintf(format, args...),
		category: e.category,
		origin:   origin,
	}
}

func RuleOf(err error) (*RuleError, bool) {
	var re *RuleError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
