package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cretpass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cretpass", hash)

	assert.NoError(t, CheckPasswordHash(hash, "s3cretpass"))
	assert.Error(t, CheckPasswordHash(hash, "wrongpass"))
}

func TestValidateLoginInput(t *testing.T) {
	assert.NoError(t, ValidateLoginInput("budi@example.com", "password"))
	assert.Error(t, ValidateLoginInput("", "password"))
	assert.Error(t, ValidateLoginInput("budi@example.com", ""))
	assert.Error(t, ValidateLoginInput("not-an-email", "password"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("budi@example.com"))
	assert.True(t, IsValidEmail("a.b+c@sub.domain.co"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail(""))
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.Error(t, ValidatePasswordStrength("short"))
	assert.NoError(t, ValidatePasswordStrength("longenough"))
}
