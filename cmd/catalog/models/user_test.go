package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("test@pashadev.com", "testpass123")
	require.NoError(t, err)

	assert.Equal(t, "test@pashadev.com", user.Email)
	assert.True(t, user.CheckPassword("testpass123"))
	assert.False(t, user.CheckPassword("wrongpass"))
	assert.True(t, user.IsActive)
	assert.False(t, user.IsStaff)
	assert.False(t, user.IsSuperuser)
}

func TestNewUserNormalizesEmail(t *testing.T) {
	user, err := NewUser("Test@PASHADEV.com", "testpass123")
	require.NoError(t, err)

	// Only the domain part is case-insensitive
	assert.Equal(t, "Test@pashadev.com", user.Email)
}

func TestNewUserEmptyEmail(t *testing.T) {
	for _, email := range []string{"", "   "} {
		_, err := NewUser(email, "testpass123")
		require.Error(t, err)
	}
}

func TestNewUserShortPassword(t *testing.T) {
	_, err := NewUser("test@pashadev.com", "pw")
	require.Error(t, err)
}

func TestNewSuperuser(t *testing.T) {
	user, err := NewSuperuser("admin@pashadev.com", "testpass123")
	require.NoError(t, err)

	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "test@pashadev.com", NormalizeEmail("test@PASHADEV.COM"))
	assert.Equal(t, "no-at-sign", NormalizeEmail("no-at-sign"))
}
