package byteutils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConcatBytes(t *testing.T) {
	first := []byte{1, 2}
	concatenated := ConcatBytes(first, nil, []byte{3})
	require.Equal(t, []byte{1, 2, 3}, concatenated)

	// the result never aliases the input
	concatenated[0] = 9
	require.Equal(t, []byte{1, 2}, first)

	require.Equal(t, "ab", ConcatBytesToString([]byte("a"), []byte("b")))
	require.Empty(t, ConcatBytes())
}

func TestHasPrefix(t *testing.T) {
	require.True(t, HasPrefix([]byte("realm/key"), []byte("realm/")))
	require.True(t, HasPrefix([]byte("key"), nil))
	require.False(t, HasPrefix([]byte("re"), []byte("realm")))
	require.False(t, HasPrefix([]byte("other"), []byte("realm")))
}

func TestKeyPrefixUpperBound(t *testing.T) {
	require.Equal(t, []byte{1, 3}, KeyPrefixUpperBound([]byte{1, 2}))
	require.Equal(t, []byte{2}, KeyPrefixUpperBound([]byte{1, 0xff}))
	require.Nil(t, KeyPrefixUpperBound([]byte{0xff, 0xff}))
}
