// Package domain defines the core domain models for keyman.
package domain

import (
	"fmt"
	"strconv"
)

// Key is a single managed access token.
//
// The JSON field names are the on-disk keyfile format.
type Key struct {
	ID      string `json:"id" yaml:"id"`
	Key     string `json:"key" yaml:"key"`
	Comment string `json:"comment" yaml:"comment"`
	Revoked bool   `json:"revoked" yaml:"revoked"`
}

// NewKey creates an active key record.
func NewKey(id, secret, comment string) *Key {
	return &Key{
		ID:      id,
		Key:     secret,
		Comment: comment,
	}
}

// Clone returns a copy of the key.
func (k *Key) Clone() *Key {
	if k == nil {
		return nil
	}
	c := *k
	return &c
}

// NumericID returns the ID as an integer. ok is false for IDs that are
// not decimal numbers.
func (k *Key) NumericID() (n int, ok bool) {
	n, err := strconv.Atoi(k.ID)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Field names a Key attribute usable for lookup and update.
type Field string

const (
	FieldID      Field = "id"
	FieldKey     Field = "key"
	FieldComment Field = "comment"
	FieldRevoked Field = "revoked"
)

// Fields returns all known fields in display order.
func Fields() []Field {
	return []Field{FieldID, FieldRevoked, FieldComment, FieldKey}
}

// ParseField maps a field name to a Field. "value" is accepted as an
// alias of "key".
func ParseField(name string) (Field, error) {
	switch name {
	case "id":
		return FieldID, nil
	case "key", "value":
		return FieldKey, nil
	case "comment":
		return FieldComment, nil
	case "revoked":
		return FieldRevoked, nil
	}
	return "", ErrInvalidArgument.WithDetails(fmt.Sprintf("unknown field %q", name))
}

// Get returns the value of field f.
func (k *Key) Get(f Field) any {
	switch f {
	case FieldID:
		return k.ID
	case FieldKey:
		return k.Key
	case FieldComment:
		return k.Comment
	case FieldRevoked:
		return k.Revoked
	}
	return nil
}

// Set assigns v to field f. String fields take a string, revoked takes a bool.
func (k *Key) Set(f Field, v any) error {
	switch f {
	case FieldID, FieldKey, FieldComment:
		s, ok := v.(string)
		if !ok {
			return ErrInvalidArgument.WithDetails(fmt.Sprintf("field %s expects a string, got %T", f, v))
		}
		switch f {
		case FieldID:
			k.ID = s
		case FieldKey:
			k.Key = s
		default:
			k.Comment = s
		}
		return nil
	case FieldRevoked:
		b, ok := v.(bool)
		if !ok {
			return ErrInvalidArgument.WithDetails(fmt.Sprintf("field %s expects a bool, got %T", f, v))
		}
		k.Revoked = b
		return nil
	}
	return ErrInvalidArgument.WithDetails(fmt.Sprintf("unknown field %q", string(f)))
}

// Matches reports whether field f of k equals v.
func (k *Key) Matches(f Field, v any) bool {
	got := k.Get(f)
	return got != nil && got == v
}

// Validate checks that the record can be stored.
func (k *Key) Validate() error {
	if k.ID == "" {
		return ErrInvalidArgument.WithDetails("key id is required")
	}
	if k.Key == "" {
		return ErrInvalidArgument.WithDetails("key value is required")
	}
	return nil
}
