// Package vocab maintains the bidirectional token table shared by the BPE
// trainer, encoder, decoder and persistence layers. The table is a bijection
// between integer token IDs and token strings; IDs are assigned sequentially
// and never reused.
package vocab

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a required ID or token string is absent.
var ErrNotFound = errors.New("vocab entry not found")

// ErrDuplicate is returned when an insert would break the ID<->token bijection.
var ErrDuplicate = errors.New("vocab entry already present")

// Table maps token IDs to token strings and back.
type Table struct {
	byID    map[int]string
	byToken map[string]int
	next    int
}

// New returns an empty table. The first Add assigns ID 0.
func New() *Table {
	return &Table{
		byID:    make(map[int]string),
		byToken: make(map[string]int),
	}
}

// Add inserts token with the next sequential ID and returns that ID.
func (t *Table) Add(token string) (int, error) {
	if _, ok := t.byToken[token]; ok {
		return 0, fmt.Errorf("add token %q: %w", token, ErrDuplicate)
	}

	id := t.next
	t.byID[id] = token
	t.byToken[token] = id
	t.next++

	return id, nil
}

// Put inserts an explicit id->token pair. It is used by the persistence
// loaders, where IDs come from a file rather than from assignment order.
func (t *Table) Put(id int, token string) error {
	if id < 0 {
		return fmt.Errorf("put token %q: negative id %d", token, id)
	}
	if _, ok := t.byID[id]; ok {
		return fmt.Errorf("put id %d: %w", id, ErrDuplicate)
	}
	if _, ok := t.byToken[token]; ok {
		return fmt.Errorf("put token %q: %w", token, ErrDuplicate)
	}

	t.byID[id] = token
	t.byToken[token] = id
	if id >= t.next {
		t.next = id + 1
	}

	return nil
}

// ID returns the ID for token.
func (t *Table) ID(token string) (int, error) {
	id, ok := t.byToken[token]
	if !ok {
		return 0, fmt.Errorf("token %q: %w", token, ErrNotFound)
	}

	return id, nil
}

// Token returns the string for id.
func (t *Table) Token(id int) (string, error) {
	token, ok := t.byID[id]
	if !ok {
		return "", fmt.Errorf("id %d: %w", id, ErrNotFound)
	}

	return token, nil
}

// Contains reports whether token is present.
func (t *Table) Contains(token string) bool {
	_, ok := t.byToken[token]
	return ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.byID)
}

// Repurpose rebinds id to token while keeping the old string resolvable in
// the token->ID direction. The external-format import path uses this to
// synthesize a newline token out of an existing sentinel ID: decoding the ID
// must yield the new token, but text containing the old literal must still
// encode to the same ID.
func (t *Table) Repurpose(id int, token string) error {
	if _, ok := t.byID[id]; !ok {
		return fmt.Errorf("repurpose id %d: %w", id, ErrNotFound)
	}
	if _, ok := t.byToken[token]; ok {
		return fmt.Errorf("repurpose to token %q: %w", token, ErrDuplicate)
	}

	t.byID[id] = token
	t.byToken[token] = id

	return nil
}

// Snapshot returns a copy of the ID->token mapping, for serialization and
// inspection. Mutating the copy does not affect the table.
func (t *Table) Snapshot() map[int]string {
	out := make(map[int]string, len(t.byID))
	for id, token := range t.byID {
		out[id] = token
	}

	return out
}
