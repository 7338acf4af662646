package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduitapp/conduit-server/internal/domain"
)

func testTokenService(t *testing.T, duration time.Duration) *TokenService {
	t.Helper()

	secret := make([]byte, 32)
	for i := range secret {
		secret[i] = byte(i)
	}

	svc, err := NewTokenService(secret, duration)
	require.NoError(t, err)
	return svc
}

func testUser() *domain.User {
	u := &domain.User{
		Username:     "janedoe",
		Email:        "jane@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
	}
	u.ID = "user-test123"
	return u
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := testTokenService(t, 24*time.Hour)
	user := testUser()

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.User.ID)
	assert.Equal(t, user.Email, claims.User.Email)
	assert.Equal(t, user.PasswordHash, claims.User.PasswordHash)
}

func TestTokenService_Expired(t *testing.T) {
	svc := testTokenService(t, -time.Minute)

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestTokenService_WrongKey(t *testing.T) {
	svc := testTokenService(t, 24*time.Hour)

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	other := make([]byte, 32)
	otherSvc, err := NewTokenService(other, 24*time.Hour)
	require.NoError(t, err)

	_, err = otherSvc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestTokenService_Malformed(t *testing.T) {
	svc := testTokenService(t, 24*time.Hour)

	_, err := svc.VerifyAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestNewTokenService_RejectsShortSecret(t *testing.T) {
	_, err := NewTokenService([]byte("too short"), time.Hour)
	assert.Error(t, err)
}
