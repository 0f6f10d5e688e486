package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	require.NoError(t, CheckPassword(hash, "correct horse"))
	require.ErrorIs(t, CheckPassword(hash, "wrong horse"), ErrPasswordInvalid)
}

func TestHashPasswordLimits(t *testing.T) {
	_, err := HashPassword("")
	require.ErrorIs(t, err, ErrPasswordEmpty)

	_, err = HashPassword(strings.Repeat("a", MaxPasswordLength+1))
	require.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = HashPassword(strings.Repeat("a", MaxPasswordLength))
	require.NoError(t, err)
}

func TestCheckPasswordRejectsOverlongSuffix(t *testing.T) {
	plain := strings.Repeat("a", MaxPasswordLength)
	hash, err := HashPassword(plain)
	require.NoError(t, err)

	require.NoError(t, CheckPassword(hash, plain))
	require.ErrorIs(t, CheckPassword(hash, plain+"suffix"), ErrPasswordInvalid)
}

func TestCheckPasswordAgainstDummy(t *testing.T) {
	require.ErrorIs(t, CheckPasswordAgainstDummy("anything"), ErrPasswordInvalid)
}
