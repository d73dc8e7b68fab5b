package wizard

import (
	"errors"

	"github.com/zharpizza/landing/internal/verification"
)

// Validation failures. Each is shown to the visitor as-is and leaves the
// wizard on the same step.
var (
	ErrInvalidPhoneFormat = errors.New("invalid phone number")
	ErrInvalidCodeFormat  = errors.New("enter the 4-digit code")
	ErrCodeMismatch       = verification.ErrCodeMismatch
	ErrNameTooShort       = errors.New("enter your name")
)

// Flow errors. These never reach the visitor's error message.
var (
	ErrClosed    = errors.New("wizard is closed")
	ErrWrongStep = errors.New("wizard is on another step")
	ErrBusy      = errors.New("wizard is already submitting")
	// ErrAbandoned is returned by a submit whose wizard was closed or
	// reopened while the verifier was working. The result was discarded.
	ErrAbandoned = errors.New("wizard was reset during submit")
)

const unavailableMessage = "service unavailable, try again later"

// IsValidation reports whether err is a visitor-facing validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidPhoneFormat) ||
		errors.Is(err, ErrInvalidCodeFormat) ||
		errors.Is(err, ErrCodeMismatch) ||
		errors.Is(err, ErrNameTooShort)
}

func messageFor(err error) string {
	for _, known := range []error{ErrInvalidPhoneFormat, ErrInvalidCodeFormat, ErrCodeMismatch, ErrNameTooShort} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return unavailableMessage
}
