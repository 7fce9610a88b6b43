package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dharma_realty/internal/domain"
)

const testSecret = "test-secret"

func TestNewTokenAndParse(t *testing.T) {
	user := domain.User{
		ID:    uuid.New(),
		Email: "agent@example.com",
		Role:  domain.RoleAgent,
	}

	token, err := NewToken(user, testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, domain.RoleAgent, claims.Role)
}

func TestParseWrongSecret(t *testing.T) {
	user := domain.User{ID: uuid.New(), Email: "u@example.com", Role: domain.RoleUser}

	token, err := NewToken(user, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = Parse(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpiredToken(t *testing.T) {
	user := domain.User{ID: uuid.New(), Email: "u@example.com", Role: domain.RoleUser}

	token, err := NewToken(user, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse("not-a-token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
