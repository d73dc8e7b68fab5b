package wizard

import (
	"sync"
	"time"
)

// DefaultIdleTTL is how long an untouched wizard is kept.
const DefaultIdleTTL = 15 * time.Minute

type entry struct {
	wizard  *Wizard
	touched time.Time
}

// Registry holds one Wizard per visitor. Only Open creates entries; entries
// idle for longer than the idle TTL are swept and closed.
type Registry struct {
	mu        sync.Mutex
	build     func(visitorID string) *Wizard
	idleTTL   time.Duration
	now       func() time.Time
	lastSweep time.Time
	wizards   map[string]*entry
}

// NewRegistry builds a registry that creates wizards on demand with build.
// A non-positive idleTTL falls back to DefaultIdleTTL.
func NewRegistry(build func(visitorID string) *Wizard, idleTTL time.Duration) *Registry {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Registry{
		build:   build,
		idleTTL: idleTTL,
		now:     time.Now,
		wizards: make(map[string]*entry),
	}
}

// Open returns the visitor's wizard in the open state, creating it if
// needed. The wizard is opened while the registry is locked, so a
// concurrent Release either precedes it or closes the wizard it returns.
func (r *Registry) Open(visitorID string) *Wizard {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.sweepLocked(now)
	e, ok := r.wizards[visitorID]
	if !ok {
		e = &entry{wizard: r.build(visitorID)}
		r.wizards[visitorID] = e
	}
	e.touched = now
	e.wizard.Open()
	return e.wizard
}

// Peek returns the visitor's wizard without creating one. Expired wizards
// are reported as absent.
func (r *Registry) Peek(visitorID string) (*Wizard, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.wizards[visitorID]
	if !ok {
		return nil, false
	}
	now := r.now()
	if now.Sub(e.touched) > r.idleTTL {
		delete(r.wizards, visitorID)
		e.wizard.Close()
		return nil, false
	}
	e.touched = now
	return e.wizard, true
}

// Release closes and forgets the visitor's wizard.
func (r *Registry) Release(visitorID string) {
	r.mu.Lock()
	e, ok := r.wizards[visitorID]
	delete(r.wizards, visitorID)
	r.mu.Unlock()
	if ok {
		e.wizard.Close()
	}
}

// Discard forgets w if it is still the visitor's wizard. It leaves a wizard
// opened by a later request in place.
func (r *Registry) Discard(visitorID string, w *Wizard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.wizards[visitorID]; ok && e.wizard == w {
		delete(r.wizards, visitorID)
	}
}

// Len reports how many wizards are held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.wizards)
}

// sweepLocked drops idle wizards at most once per idle TTL.
func (r *Registry) sweepLocked(now time.Time) {
	if now.Sub(r.lastSweep) < r.idleTTL {
		return
	}
	r.lastSweep = now
	for id, e := range r.wizards {
		if now.Sub(e.touched) > r.idleTTL {
			delete(r.wizards, id)
			e.wizard.Close()
		}
	}
}
