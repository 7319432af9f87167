package presence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChannelName_OrderIndependent(t *testing.T) {
	require.Equal(t, ChannelName("u1", "u2"), ChannelName("u2", "u1"))
	require.Equal(t, "typing:u1:u2", ChannelName("u2", "u1"))
}

func TestParseChannel(t *testing.T) {
	a, b, ok := ParseChannel(ChannelName("u2", "u1"))
	require.True(t, ok)
	require.Equal(t, "u1", a)
	require.Equal(t, "u2", b)

	_, _, ok = ParseChannel("presence:u1:u2")
	require.False(t, ok)
	_, _, ok = ParseChannel("typing:justone")
	require.False(t, ok)
	_, _, ok = ParseChannel("typing::u2")
	require.False(t, ok)
}
