package auth

import (
	"testing"
	"time"

	"vacancy_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, 7*24*time.Hour)

	token, err := m.Issue("acc-1", models.RoleRecruiter, false)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.ID)
	assert.Equal(t, models.RoleRecruiter, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenManager_RememberMeIssuesLongToken(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, 7*24*time.Hour)

	token, err := m.Issue("acc-1", models.RoleUser, true)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenManager_RejectsExpiredAndForeignTokens(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, time.Hour)
	token, err := m.Issue("acc-1", models.RoleUser, false)
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrExpiredToken)

	other := NewTokenManager("another-secret", time.Hour, time.Hour)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = other.Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateVerificationCode_SixDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateVerificationCode()
		require.NoError(t, err)
		assert.Regexp(t, `^\d{6}$`, code)
	}
}

func TestGenerateResetToken_Hex64(t *testing.T) {
	a, err := GenerateResetToken()
	require.NoError(t, err)
	b, err := GenerateResetToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("pw123456")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("pw123456", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("pw123456", ""))

	assert.ErrorIs(t, ValidatePassword("12345"), ErrWeakPassword)
	assert.NoError(t, ValidatePassword("123456"))
}

func TestCanActFor(t *testing.T) {
	assert.True(t, CanActFor("a", models.RoleRecruiter, ""))
	assert.True(t, CanActFor("a", models.RoleRecruiter, "a"))
	assert.False(t, CanActFor("a", models.RoleRecruiter, "b"))
	assert.True(t, CanActFor("a", models.RoleAdmin, "b"))
	assert.True(t, NewRoleSet(models.RoleUser).Allows(models.RoleUser))
	assert.False(t, NewRoleSet(models.RoleUser).Allows(models.RoleAdmin))
}
