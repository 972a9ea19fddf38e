package auth

import (
	"testing"
	"time"

	"github.com/isdelr/campus-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(ttl time.Duration) *TokenManager {
	return NewTokenManager("super-secret", "campus-api", "campus-clients", ttl)
}

func testUser() models.User {
	return models.User{
		ID:        "user-123",
		Email:     "s@x.edu",
		Role:      models.RoleStudent,
		ProfileID: "profile-456",
	}
}

func TestTokenManager_GenerateAndValidate(t *testing.T) {
	t.Parallel()

	tm := newTestManager(time.Hour)
	tok, err := tm.Generate(testUser())
	require.NoError(t, err)

	claims, err := tm.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "s@x.edu", claims.Email)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.Equal(t, "profile-456", claims.ProfileID)
}

func TestTokenManager_Expired(t *testing.T) {
	t.Parallel()

	tm := newTestManager(-1 * time.Second)
	tok, err := tm.Generate(testUser())
	require.NoError(t, err)

	_, err = tm.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	t.Parallel()

	tm := newTestManager(time.Hour)
	tok, err := tm.Generate(testUser())
	require.NoError(t, err)

	other := NewTokenManager("different-secret", "campus-api", "campus-clients", time.Hour)
	_, err = other.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongIssuer(t *testing.T) {
	t.Parallel()

	issued := NewTokenManager("super-secret", "someone-else", "campus-clients", time.Hour)
	tok, err := issued.Generate(testUser())
	require.NoError(t, err)

	_, err = newTestManager(time.Hour).Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongAudience(t *testing.T) {
	t.Parallel()

	issued := NewTokenManager("super-secret", "campus-api", "other-clients", time.Hour)
	tok, err := issued.Generate(testUser())
	require.NoError(t, err)

	_, err = newTestManager(time.Hour).Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Malformed(t *testing.T) {
	t.Parallel()

	_, err := newTestManager(time.Hour).Validate("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
