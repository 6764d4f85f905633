package auth

import (
	"testing"
	"time"

	"github.com/budgetly/budgetly/internal/apperr"
	"github.com/budgetly/budgetly/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenService(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2023, 6, 15, 10, 0, 0, 0, time.UTC)}
	service := NewTokenService("test-secret", time.Hour, clock)

	t.Run("should return the email a token was issued for", func(t *testing.T) {
		token, err := service.Issue("alice@example.com")
		require.NoError(t, err)

		email, err := service.Validate(token)

		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", email)
	})

	t.Run("should reject expired tokens", func(t *testing.T) {
		// given
		token, err := service.Issue("alice@example.com")
		require.NoError(t, err)
		clock.SetNow(clock.Now().Add(2 * time.Hour))
		defer clock.SetNow(time.Date(2023, 6, 15, 10, 0, 0, 0, time.UTC))

		// when
		_, err = service.Validate(token)

		// then
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("should reject tokens signed with another secret", func(t *testing.T) {
		other := NewTokenService("other-secret", time.Hour, clock)
		token, err := other.Issue("mallory@example.com")
		require.NoError(t, err)

		_, err = service.Validate(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("should reject unsigned tokens", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "mallory@example.com"})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.Validate(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := service.Validate("not-a-token")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasherWithCost(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	ok, err := hasher.Matches(hash, "correct horse")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Matches(hash, "battery staple")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = hasher.Matches("not-a-hash", "correct horse")
	assert.Error(t, err)
}
