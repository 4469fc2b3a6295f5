package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gibbz00/language-service-go/protocol"
)

func TestTypeStore_InsertResolve_RoundTrip(t *testing.T) {
	store := NewTypeStore()
	id := protocol.IntID(1)

	store.Insert(id, func(u protocol.UntypedResponseMessage) (any, error) {
		return protocol.DecodeResponse[protocol.ShutdownResult](u)
	})
	require.Equal(t, 1, store.Len())

	u := protocol.UntypedResponseMessage{ID: protocol.FromRequestID(id)}
	v, ok, err := store.Resolve(id, u)
	require.NoError(t, err)
	require.True(t, ok)
	assert.IsType(t, protocol.Response[protocol.ShutdownResult]{}, v)
	assert.Equal(t, 0, store.Len())
}

func TestTypeStore_Resolve_Orphan(t *testing.T) {
	store := NewTypeStore()
	_, ok, err := store.Resolve(protocol.IntID(42), protocol.UntypedResponseMessage{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTypeStore_Insert_LastWriterWins(t *testing.T) {
	store := NewTypeStore()
	id := protocol.StringID("dup")

	var firstCalled, secondCalled bool
	store.Insert(id, func(protocol.UntypedResponseMessage) (any, error) {
		firstCalled = true
		return nil, nil
	})
	store.Insert(id, func(protocol.UntypedResponseMessage) (any, error) {
		secondCalled = true
		return nil, nil
	})
	require.Equal(t, 1, store.Len())

	_, ok, err := store.Resolve(id, protocol.UntypedResponseMessage{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, firstCalled)
	assert.True(t, secondCalled)
}

func TestTypeStore_Resolve_TypingError(t *testing.T) {
	store := NewTypeStore()
	id := protocol.IntID(7)
	store.Insert(id, func(protocol.UntypedResponseMessage) (any, error) {
		return nil, assertError{}
	})

	_, ok, err := store.Resolve(id, protocol.UntypedResponseMessage{})
	require.True(t, ok)
	assert.Error(t, err)
	assert.Equal(t, 0, store.Len())
}

type assertError struct{}

func (assertError) Error() string { return "typing failed" }
