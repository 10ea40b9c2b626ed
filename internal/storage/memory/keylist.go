// Package memory provides in-memory storage implementations.
package memory

import (
	"fmt"
	"sync"

	"github.com/yndnr/keyman/internal/core/domain"
)

// KeyList is an ordered collection of keys. Insertion order is preserved
// and lookups scan it front to back, so the first match wins.
type KeyList struct {
	mu   sync.RWMutex
	keys []*domain.Key
}

// NewKeyList creates an empty key list.
func NewKeyList() *KeyList {
	return &KeyList{}
}

// Find returns a copy of the first key whose field equals value, or nil.
func (l *KeyList) Find(field domain.Field, value any) *domain.Key {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i := l.index(field, value); i >= 0 {
		return l.keys[i].Clone()
	}
	return nil
}

// Contains reports whether Find would return a key.
func (l *KeyList) Contains(field domain.Field, value any) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.index(field, value) >= 0
}

// Update sets target to newValue on the first key whose search field
// equals searchValue.
func (l *KeyList) Update(search domain.Field, searchValue any, target domain.Field, newValue any) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(search, searchValue)
	if i < 0 {
		return domain.ErrKeyNotFound.WithDetails(fmt.Sprintf("no value %v found for field %s", searchValue, search))
	}
	return l.keys[i].Set(target, newValue)
}

// Append adds key at the end of the list. It fails with ErrKeyConflict,
// leaving the list unchanged, when an existing key has the same unique field.
func (l *KeyList) Append(key *domain.Key, unique domain.Field) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.index(unique, key.Get(unique)) >= 0 {
		return domain.ErrKeyConflict.WithDetails(fmt.Sprintf("value already added for field %s: id=%s", unique, key.ID))
	}
	l.keys = append(l.keys, key.Clone())
	return nil
}

// All returns copies of all keys in insertion order.
func (l *KeyList) All() []*domain.Key {
	l.mu.RLock()
	defer l.mu.RUnlock()

	keys := make([]*domain.Key, 0, len(l.keys))
	for _, k := range l.keys {
		keys = append(keys, k.Clone())
	}
	return keys
}

// Len returns the number of keys.
func (l *KeyList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.keys)
}

// MaxID returns the largest numeric key ID, or 0 when there is none.
func (l *KeyList) MaxID() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	highest := 0
	for _, k := range l.keys {
		if n, ok := k.NumericID(); ok && n > highest {
			highest = n
		}
	}
	return highest
}

// index returns the position of the first match; caller holds the lock.
func (l *KeyList) index(field domain.Field, value any) int {
	for i, k := range l.keys {
		if k.Matches(field, value) {
			return i
		}
	}
	return -1
}
