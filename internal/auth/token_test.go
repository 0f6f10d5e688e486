package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/tenant-backend/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:             7,
		Username:       "alice",
		Role:           domain.RoleAdmin,
		OrganizationID: 3,
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, expiresAt, err := svc.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, uint(3), claims.OrganizationID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "alice", claims.Subject)
}

func TestVerifyExpired(t *testing.T) {
	svc := NewTokenService("secret", time.Minute)
	issuedAt := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issuedAt }

	token, _, err := svc.Issue(testUser())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, _, err := NewTokenService("secret", time.Hour).Issue(testUser())
	require.NoError(t, err)

	_, err = NewTokenService("other-secret", time.Hour).Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	claims := &Claims{
		UserID:         7,
		OrganizationID: 3,
		Role:           domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.Verify(hs512)
	require.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(none)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRequiresExpiry(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:         7,
		OrganizationID: 3,
		Role:           domain.RoleMember,
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	for _, token := range []string{"", "abc", "a.b.c"} {
		_, err := svc.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken, token)
	}
}
