package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		name string
		want Field
	}{
		{"id", FieldID},
		{"key", FieldKey},
		{"value", FieldKey},
		{"comment", FieldComment},
		{"revoked", FieldRevoked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseField(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseField("owner")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestKey_GetSet(t *testing.T) {
	k := NewKey("1", "abc", "svc-a")
	assert.Equal(t, "1", k.Get(FieldID))
	assert.Equal(t, "abc", k.Get(FieldKey))
	assert.Equal(t, "svc-a", k.Get(FieldComment))
	assert.Equal(t, false, k.Get(FieldRevoked))
	assert.Nil(t, k.Get(Field("owner")))

	require.NoError(t, k.Set(FieldRevoked, true))
	assert.True(t, k.Revoked)
	require.NoError(t, k.Set(FieldComment, "svc-b"))
	assert.Equal(t, "svc-b", k.Comment)

	err := k.Set(FieldRevoked, "yes")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	err = k.Set(FieldID, 2)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, "1", k.ID)
}

func TestKey_Matches(t *testing.T) {
	k := NewKey("7", "secret", "")
	assert.True(t, k.Matches(FieldID, "7"))
	assert.False(t, k.Matches(FieldID, 7))
	assert.True(t, k.Matches(FieldRevoked, false))
	assert.False(t, k.Matches(Field("owner"), nil))
}

func TestKey_NumericID(t *testing.T) {
	n, ok := NewKey("42", "x", "").NumericID()
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = NewKey("abc", "x", "").NumericID()
	assert.False(t, ok)
}

func TestKey_Clone(t *testing.T) {
	k := NewKey("1", "abc", "c")
	c := k.Clone()
	c.Revoked = true
	assert.False(t, k.Revoked)

	var nilKey *Key
	assert.Nil(t, nilKey.Clone())
}

func TestKey_Validate(t *testing.T) {
	assert.NoError(t, NewKey("1", "abc", "").Validate())
	assert.True(t, errors.Is(NewKey("", "abc", "").Validate(), ErrInvalidArgument))
	assert.True(t, errors.Is(NewKey("1", "", "").Validate(), ErrInvalidArgument))
}
