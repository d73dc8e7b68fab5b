// Package wizard runs the three-step sign-in flow: phone, code, name.
//
// A Wizard is safe for concurrent use. Only one submit may be in flight at a
// time. Submits that reach the Verifier release the lock while it works, and
// their result is dropped if the wizard was closed or reopened in the
// meantime.
package wizard

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/zharpizza/landing/internal/phone"
	"github.com/zharpizza/landing/internal/session"
	"github.com/zharpizza/landing/internal/verification"
)

const (
	codeLength    = 4
	minNameLength = 2
)

// SuccessFunc receives the Credential of a completed wizard. It runs with the
// wizard locked and must not call back into it.
type SuccessFunc func(ctx context.Context, cred session.Credential) error

// Wizard is the state machine behind the sign-in modal.
type Wizard struct {
	mu         sync.Mutex
	verifier   verification.Verifier
	onSuccess  SuccessFunc
	state      State
	open       bool
	submitting bool
	generation uint64
}

// New builds a closed wizard on the phone step.
func New(verifier verification.Verifier, onSuccess SuccessFunc) *Wizard {
	return &Wizard{verifier: verifier, onSuccess: onSuccess, state: PhoneState{}}
}

// View returns a snapshot of the current state.
func (w *Wizard) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return viewOf(w.open, w.submitting, w.state)
}

// Open shows the modal. Opening an open wizard changes nothing.
func (w *Wizard) Open() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.open {
		return
	}
	w.resetLocked()
	w.open = true
}

// Close hides the modal and discards all transient input. Any submit still
// waiting on the verifier becomes a no-op.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetLocked()
}

func (w *Wizard) resetLocked() {
	w.generation++
	w.state = PhoneState{}
	w.open = false
	w.submitting = false
}

// SetPhone stores a keystroke-level phone edit, formatted for display.
func (w *Wizard) SetPhone(raw string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := stepLocked[PhoneState](w); err != nil {
		return err
	}
	w.state = PhoneState{Input: phone.Format(raw)}
	return nil
}

// SetCode stores a code edit. Non-digits are dropped and the value is
// capped at four characters.
func (w *Wizard) SetCode(raw string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	st, err := stepLocked[CodeState](w)
	if err != nil {
		return err
	}
	st.Input = sanitizeCode(raw)
	st.Error = ""
	w.state = st
	return nil
}

// SetName stores a name edit.
func (w *Wizard) SetName(raw string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	st, err := stepLocked[NameState](w)
	if err != nil {
		return err
	}
	st.Input = raw
	st.Error = ""
	w.state = st
	return nil
}

// SubmitPhone validates raw and asks the verifier to send a code. On success
// the wizard moves to the code step.
func (w *Wizard) SubmitPhone(ctx context.Context, raw string) error {
	w.mu.Lock()
	st, err := stepLocked[PhoneState](w)
	if err != nil {
		w.mu.Unlock()
		return err
	}
	st.Input = phone.Format(raw)
	if !phone.Valid(st.Input) {
		st.Error = messageFor(ErrInvalidPhoneFormat)
		w.state = st
		w.mu.Unlock()
		return ErrInvalidPhoneFormat
	}
	st.Error = ""
	w.state = st
	gen := w.beginLocked()
	w.mu.Unlock()

	err = w.verifier.RequestCode(ctx, st.Input)

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.generation {
		return ErrAbandoned
	}
	w.submitting = false
	if err != nil {
		st.Error = messageFor(err)
		w.state = st
		return err
	}
	w.state = CodeState{Phone: st.Input}
	return nil
}

// SubmitCode checks raw with the verifier. A matching code moves the wizard
// to the name step; a mismatch is reported only after the verifier answers.
func (w *Wizard) SubmitCode(ctx context.Context, raw string) error {
	w.mu.Lock()
	st, err := stepLocked[CodeState](w)
	if err != nil {
		w.mu.Unlock()
		return err
	}
	raw = strings.TrimSpace(raw)
	st.Input = sanitizeCode(raw)
	if st.Input != raw || len(st.Input) != codeLength {
		st.Error = messageFor(ErrInvalidCodeFormat)
		w.state = st
		w.mu.Unlock()
		return ErrInvalidCodeFormat
	}
	st.Error = ""
	w.state = st
	gen := w.beginLocked()
	w.mu.Unlock()

	err = w.verifier.VerifyCode(ctx, st.Phone, st.Input)

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.generation {
		return ErrAbandoned
	}
	w.submitting = false
	if err != nil {
		st.Error = messageFor(err)
		w.state = st
		return err
	}
	w.state = NameState{Phone: st.Phone}
	return nil
}

// Back returns from the code step to the phone step, keeping the phone and
// dropping the code.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	st, err := stepLocked[CodeState](w)
	if err != nil {
		return err
	}
	w.state = PhoneState{Input: st.Phone}
	return nil
}

// SubmitName completes the wizard. The success callback fires exactly once
// with the verified phone and the trimmed name, then the wizard resets and
// closes.
func (w *Wizard) SubmitName(ctx context.Context, raw string) (session.Credential, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	st, err := stepLocked[NameState](w)
	if err != nil {
		return session.Credential{}, err
	}
	st.Input = raw
	name := strings.TrimSpace(raw)
	if utf8.RuneCountInString(name) < minNameLength {
		st.Error = messageFor(ErrNameTooShort)
		w.state = st
		return session.Credential{}, ErrNameTooShort
	}

	cred := session.Credential{Phone: st.Phone, Name: name}
	if w.onSuccess != nil {
		if err := w.onSuccess(ctx, cred); err != nil {
			st.Error = messageFor(err)
			w.state = st
			return session.Credential{}, err
		}
	}
	w.resetLocked()
	return cred, nil
}

func (w *Wizard) beginLocked() uint64 {
	w.submitting = true
	return w.generation
}

// stepLocked returns the current state as S, or the reason the wizard cannot
// accept input for step S right now.
func stepLocked[S State](w *Wizard) (S, error) {
	var zero S
	if !w.open {
		return zero, ErrClosed
	}
	if w.submitting {
		return zero, ErrBusy
	}
	st, ok := w.state.(S)
	if !ok {
		return zero, ErrWrongStep
	}
	return st, nil
}

func sanitizeCode(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if b.Len() == codeLength {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
