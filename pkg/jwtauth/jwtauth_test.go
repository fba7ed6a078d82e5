package jwtauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseAdmin(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour, 20*time.Minute)

	token, expiresAt, err := issuer.IssueAdmin(7, "principal")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := issuer.ParseAdmin(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "principal", claims.Role)

	_, err = issuer.ParseParent(token)
	assert.ErrorIs(t, err, ErrWrongKind)
}

func TestParentSessionExpiresAfterTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	issuer := NewIssuer("secret", time.Hour, 20*time.Minute).WithClock(func() time.Time { return now })

	token, expiresAt, err := issuer.IssueParent("9876543210")
	require.NoError(t, err)
	assert.Equal(t, now.Add(20*time.Minute), expiresAt)

	now = now.Add(19 * time.Minute)
	claims, err := issuer.ParseParent(token)
	require.NoError(t, err)
	assert.Equal(t, "9876543210", claims.Mobile)

	now = now.Add(time.Minute)
	_, err = issuer.ParseParent(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	a := NewIssuer("secret-a", time.Hour, time.Hour)
	b := NewIssuer("secret-b", time.Hour, time.Hour)

	token, _, err := a.IssueAdmin(1, "admin")
	require.NoError(t, err)

	_, err = b.ParseAdmin(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = b.ParseAdmin("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
