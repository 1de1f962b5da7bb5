package availability

import (
	"errors"
	"fmt"
)

const (
	// CodeRulesUnavailable means the global scheduling defaults could not be
	// loaded at all. Fatal to the slot-listing request; retry later.
	CodeRulesUnavailable = "rulesUnavailable"
	// CodeAvailabilityUnavailable means the external calendar could not be
	// reached. Never treated as "fully available".
	CodeAvailabilityUnavailable = "availabilityUnavailable"
)

// Error is a coded availability failure so callers can pick a retry policy.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewRulesUnavailableError wraps a failure to load the global rule defaults.
func NewRulesUnavailableError(err error) error {
	return &Error{Code: CodeRulesUnavailable, Message: "scheduling rules unavailable", Err: err}
}

// NewAvailabilityUnavailableError wraps an unreachable external calendar.
func NewAvailabilityUnavailableError(err error) error {
	return &Error{Code: CodeAvailabilityUnavailable, Message: "external calendar unreachable", Err: err}
}

// ErrorCode extracts the availability error code, or "" for other errors.
func ErrorCode(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
