package signal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnection(t *testing.T) {
	s := New[int]()
	calls := 0
	c := s.Bind(func(int) { calls++ })
	require.NotZero(t, c.Handle())
	require.True(t, c.Connected())

	s.Emit(0)
	require.Equal(t, 1, calls)

	require.True(t, c.Disconnect())
	require.False(t, c.Disconnect())
	require.False(t, c.Connected())
	require.Zero(t, c.Handle())

	s.Emit(0)
	require.Equal(t, 1, calls)
}

// Owner and observer both tearing down the same subscription is benign.
func TestConnection_DoubleTeardown(t *testing.T) {
	s := New[int]()
	c := s.Bind(func(int) {})
	h := c.Handle()

	require.True(t, s.Disconnect(h))
	require.False(t, c.Disconnect())
}

func TestConnection_Once(t *testing.T) {
	s := New[int]()
	c := s.BindOnce(func(int) {})
	require.True(t, c.Connected())

	s.Emit(0)
	require.False(t, c.Connected())
	require.False(t, c.Disconnect())
}

func TestGroup(t *testing.T) {
	ints := New[int]()
	strs := New[string]()

	var g Group
	g.Add(ints.Bind(func(int) {}), strs.Bind(func(string) {}))
	once := ints.BindOnce(func(int) {})
	g.Add(once)
	require.Equal(t, 3, g.Len())

	ints.Emit(1) // fires and removes the one-shot

	require.Equal(t, 2, g.DisconnectAll())
	require.Zero(t, g.Len())
	require.True(t, ints.Empty())
	require.True(t, strs.Empty())

	require.Zero(t, g.DisconnectAll())
}
