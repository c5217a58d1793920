package auth

import (
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTokenExpiry(t *testing.T) {
	skew := 30 * time.Second
	now := time.Now().UTC()

	t.Run("valid token", func(t *testing.T) {
		claims := jwt.MapClaims{"exp": float64(now.Add(time.Hour).Unix())}
		assert.NoError(t, validateTokenExpiry(claims, skew))
	})

	t.Run("expired token", func(t *testing.T) {
		claims := jwt.MapClaims{"exp": float64(now.Add(-time.Hour).Unix())}
		assert.Error(t, validateTokenExpiry(claims, skew))
	})

	t.Run("within skew window", func(t *testing.T) {
		claims := jwt.MapClaims{"exp": float64(now.Add(-10 * time.Second).Unix())}
		assert.NoError(t, validateTokenExpiry(claims, skew))
	})

	t.Run("just past skew window", func(t *testing.T) {
		claims := jwt.MapClaims{"exp": float64(now.Add(-45 * time.Second).Unix())}
		assert.Error(t, validateTokenExpiry(claims, skew))
	})

	t.Run("missing exp", func(t *testing.T) {
		assert.Error(t, validateTokenExpiry(jwt.MapClaims{}, skew))
	})

	t.Run("string exp accepted", func(t *testing.T) {
		claims := jwt.MapClaims{"exp": fmt.Sprintf("%d", now.Add(time.Hour).Unix())}
		assert.NoError(t, validateTokenExpiry(claims, skew))
	})

	t.Run("garbage exp rejected", func(t *testing.T) {
		assert.Error(t, validateTokenExpiry(jwt.MapClaims{"exp": "soon"}, skew))
		assert.Error(t, validateTokenExpiry(jwt.MapClaims{"exp": true}, skew))
	})
}

func TestExtractUserID(t *testing.T) {
	id := uuid.New()

	got, err := extractUserID(jwt.MapClaims{"id": id.String()})
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = extractUserID(jwt.MapClaims{})
	assert.Error(t, err)

	_, err = extractUserID(jwt.MapClaims{"id": 12345})
	assert.Error(t, err)

	_, err = extractUserID(jwt.MapClaims{"id": "not-a-uuid"})
	assert.Error(t, err)
}
