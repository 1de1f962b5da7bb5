package booking

import (
	"errors"
	"fmt"
)

// Error codes distinguish caller recovery actions: an expired hold means
// re-list and re-hold, a taken slot means pick a different one, a failed
// write means retry the same commit before the hold expires.
const (
	CodeProviderNotFound      = "providerNotFound"
	CodeInvalidSlot           = "invalidSlot"
	CodeHoldConflict          = "holdConflict"
	CodeHoldExpired           = "holdExpired"
	CodeSlotNoLongerAvailable = "slotNoLongerAvailable"
	CodeExternalWriteFailed   = "externalWriteFailed"
)

// Error is a coded booking failure.
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

func newError(code, message string) error {
	return &Error{Code: code, Message: message}
}

// ErrorCode extracts the booking error code, or "" for other errors.
func ErrorCode(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
