package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silsilah/bloglist-service/internal/models"
)

func testSession(expiresIn time.Duration) *models.Session {
	now := time.Now()
	return &models.Session{
		ID:        "session-1",
		UserID:    "user-1",
		IssuedAt:  now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret")

	token, err := m.Issue(testSession(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sessionID, userID, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", sessionID)
	assert.Equal(t, "user-1", userID)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").Issue(testSession(time.Hour))
	require.NoError(t, err)

	_, _, err = NewTokenManager("secret-b").Parse(token)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("test-secret")
	token, err := m.Issue(testSession(-time.Minute))
	require.NoError(t, err)

	_, _, err = m.Parse(token)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
}

func TestTokenManager_Garbage(t *testing.T) {
	m := NewTokenManager("test-secret")

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, _, err := m.Parse(token)
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	}
}
