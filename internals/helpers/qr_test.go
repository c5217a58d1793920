package helper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQRToken_Shape(t *testing.T) {
	token := GenerateQRToken()

	require.True(t, strings.HasPrefix(token, "KREP-"), "token %q missing prefix", token)
	assert.Len(t, token, len("KREP-")+8)

	suffix := strings.TrimPrefix(token, "KREP-")
	assert.Equal(t, strings.ToUpper(suffix), suffix, "suffix must be uppercase")
	for _, r := range suffix {
		assert.Contains(t, "0123456789ABCDEF", string(r))
	}
}

func TestGenerateQRToken_Unique(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		token := GenerateQRToken()
		require.False(t, seen[token], "duplicate token %q", token)
		seen[token] = true
	}
}
