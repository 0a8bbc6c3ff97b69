package pwdhash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashRoundTrip(t *testing.T) {
	h := HashPIN("123456")
	require.Len(t, h, hashLenV1)
	require.True(t, VerifyHash("123456", h))
	require.False(t, VerifyHash("123457", h))
	require.False(t, VerifyHash("", h))
}

func TestHashBase64(t *testing.T) {
	h := HashPINBase64("314159")
	require.True(t, VerifyHashBase64("314159", h))
	require.False(t, VerifyHashBase64("271828", h))
	require.False(t, VerifyHashBase64("314159", "not-base64!!"))
	require.False(t, VerifyHashBase64("314159", ""))
}

func TestTruncatedHash(t *testing.T) {
	h := HashPIN("123456")
	require.False(t, VerifyHash("123456", h[:len(h)-1]))
	require.False(t, VerifyHash("123456", nil))
}

func TestSaltIsUnique(t *testing.T) {
	h1 := HashPIN("123456")
	h2 := HashPIN("123456")
	require.NotEqual(t, h1, h2)
	require.True(t, VerifyHash("123456", h1))
	require.True(t, VerifyHash("123456", h2))
}
