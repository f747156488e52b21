package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(now time.Time) *HMACService {
	s := NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	s.now = func() time.Time { return now }
	return s
}

func TestAccessTokenRoundTrip(t *testing.T) {
	now := time.Now()
	s := newTestService(now)
	id := uuid.New()

	tok, err := s.GenerateAccessToken(id, "admin@example.com", "admin")
	require.NoError(t, err)

	c, err := s.ValidateAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, id, c.UserID)
	assert.Equal(t, "admin@example.com", c.Email)
	assert.Equal(t, "admin", c.Role)
	assert.Equal(t, TokenTypeAccess, c.TokenType)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	s := newTestService(time.Now())
	id := uuid.New()

	access, err := s.GenerateAccessToken(id, "", "seeker")
	require.NoError(t, err)
	refresh, err := s.GenerateRefreshToken(id)
	require.NoError(t, err)

	_, err = s.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = s.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	c, err := s.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, id, c.UserID)
}

func TestExpiredToken(t *testing.T) {
	issued := time.Now().Add(-time.Hour)
	s := newTestService(issued)

	tok, err := s.GenerateAccessToken(uuid.New(), "", "seeker")
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(time.Hour) }
	_, err = s.ValidateAccessToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestGarbageToken(t *testing.T) {
	s := newTestService(time.Now())
	_, err := s.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestMissingSecretRefusesToSign(t *testing.T) {
	s := NewHMACService("", "refresh", time.Minute, time.Minute)
	_, err := s.GenerateAccessToken(uuid.New(), "", "admin")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
