package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordManager(t *testing.T) {
	pm := NewPasswordManager(bcrypt.MinCost, 6)

	hash, err := pm.HashPassword("demo123")
	require.NoError(t, err)
	assert.NotEqual(t, "demo123", hash)

	assert.NoError(t, pm.ComparePassword(hash, "demo123"))
	assert.ErrorIs(t, pm.ComparePassword(hash, "demo124"), ErrPasswordMismatch)

	_, err = pm.HashPassword("abc")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestPasswordManager_HashFixedPassword(t *testing.T) {
	pm := NewPasswordManager(bcrypt.MinCost, 12)

	_, err := pm.HashPassword("demo123")
	require.ErrorIs(t, err, ErrWeakPassword)

	hash, err := pm.HashFixedPassword("demo123")
	require.NoError(t, err)
	assert.NoError(t, pm.ComparePassword(hash, "demo123"))
}

func TestNewPasswordManager_InvalidCostFallsBack(t *testing.T) {
	pm := NewPasswordManager(99, 0)
	assert.Equal(t, bcrypt.DefaultCost, pm.cost)
	assert.Equal(t, 1, pm.minLength)
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{email: "alex@demo.com"},
		{email: "first.last+tag@example.co.uk"},
		{email: "invalid-email", wantErr: true},
		{email: "missing@tld", wantErr: true},
		{email: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSessionTokenManager(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	tm := NewSessionTokenManager("test-secret", time.Hour).WithClock(clock)

	token, err := tm.Issue("user-1", "alex@demo.com", "Alex Johnson", "Manager")
	require.NoError(t, err)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Alex Johnson", claims.Name)
	assert.Equal(t, "Manager", claims.Role)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewSessionTokenManager("other-secret", time.Hour).WithClock(clock)
		_, err := other.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewSessionTokenManager("test-secret", time.Hour).WithClock(func() time.Time {
			return now.Add(2 * time.Hour)
		})
		_, err := later.Validate(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tm.Validate("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
