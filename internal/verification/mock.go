package verification

import (
	"context"
	"time"
)

// DefaultMockCode is the only code Mock accepts unless configured otherwise.
const DefaultMockCode = "1234"

// Mock simulates an SMS backend locally. Nothing is sent: RequestCode waits
// SendDelay and succeeds, VerifyCode waits VerifyDelay and then accepts only
// Code. A mismatch is reported after the delay, never before it.
type Mock struct {
	Code        string
	SendDelay   time.Duration
	VerifyDelay time.Duration
}

// NewMock builds a Mock with the given fixed code and delays.
func NewMock(code string, sendDelay, verifyDelay time.Duration) *Mock {
	if code == "" {
		code = DefaultMockCode
	}
	return &Mock{Code: code, SendDelay: sendDelay, VerifyDelay: verifyDelay}
}

// RequestCode pretends to send a code.
func (m *Mock) RequestCode(ctx context.Context, _ string) error {
	return wait(ctx, m.SendDelay)
}

// VerifyCode compares code with the fixed mock code.
func (m *Mock) VerifyCode(ctx context.Context, _ string, code string) error {
	if err := wait(ctx, m.VerifyDelay); err != nil {
		return err
	}
	if code != m.Code {
		return ErrCodeMismatch
	}
	return nil
}
