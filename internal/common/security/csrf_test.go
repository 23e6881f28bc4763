package security

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCsrfToken(t *testing.T) {
	t.Parallel()

	tok, err := NewCsrfToken()
	require.NoError(t, err)
	require.Len(t, tok, csrfTokenBytes*2) // hex encoded

	other, err := NewCsrfToken()
	require.NoError(t, err)
	require.NotEqual(t, tok, other)
}

func TestVerifyCsrfToken(t *testing.T) {
	t.Parallel()

	tok, err := NewCsrfToken()
	require.NoError(t, err)

	require.True(t, VerifyCsrfToken(tok, tok))
	require.False(t, VerifyCsrfToken(tok, ""))
	require.False(t, VerifyCsrfToken("", tok))
	require.False(t, VerifyCsrfToken(tok, tok[:len(tok)-1]))
	require.False(t, VerifyCsrfToken(tok, "short"))

	flipped := "0" + tok[1:]
	if flipped == tok {
		flipped = "1" + tok[1:]
	}
	require.False(t, VerifyCsrfToken(tok, flipped))
}
