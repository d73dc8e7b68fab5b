// Package session keeps the signed-in visitor's Credential in a single
// key-value slot.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// SlotKey is the fixed name of the Credential slot.
const SlotKey = "user"

// ErrNotFound is returned by a Store when the key holds no value.
var ErrNotFound = errors.New("session: key not found")

// Credential is the (phone, name) pair of a signed-in visitor.
type Credential struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

// Store is a flat key-value store of raw values.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Holder reads and writes one Credential slot. Last write wins.
type Holder struct {
	store Store
	key   string
}

// NewHolder binds the Credential slot of scope (usually a visitor id) in store.
// An empty scope uses the bare SlotKey.
func NewHolder(store Store, scope string) *Holder {
	key := SlotKey
	if scope != "" {
		key = scope + ":" + SlotKey
	}
	return &Holder{store: store, key: key}
}

// Load returns the stored Credential. ok is false when the slot is empty.
func (h *Holder) Load(ctx context.Context) (cred Credential, ok bool, err error) {
	raw, err := h.store.Get(ctx, h.key)
	if errors.Is(err, ErrNotFound) {
		return Credential{}, false, nil
	}
	if err != nil {
		return Credential{}, false, fmt.Errorf("load credential: %w", err)
	}
	if err := json.Unmarshal(raw, &cred); err != nil {
		return Credential{}, false, fmt.Errorf("decode credential: %w", err)
	}
	return cred, true, nil
}

// Save overwrites the slot with cred.
func (h *Holder) Save(ctx context.Context, cred Credential) error {
	raw, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	if err := h.store.Set(ctx, h.key, raw); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

// Clear empties the slot. Clearing an empty slot is not an error.
func (h *Holder) Clear(ctx context.Context) error {
	if err := h.store.Delete(ctx, h.key); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}
