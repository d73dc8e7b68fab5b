// Package verification sends and checks the one-time codes that prove a
// visitor owns a phone number.
package verification

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCodeMismatch reports a wrong, expired or never-issued code.
	ErrCodeMismatch = errors.New("invalid code")
	// ErrServiceUnavailable wraps backend failures. Callers may retry later.
	ErrServiceUnavailable = errors.New("verification service unavailable")
)

// Verifier issues and checks codes for a phone number. Phones are passed in
// display form; implementations normalise them as they need.
type Verifier interface {
	RequestCode(ctx context.Context, phone string) error
	VerifyCode(ctx context.Context, phone, code string) error
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
