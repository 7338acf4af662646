package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/conduitapp/conduit-server/internal/errors"
)

func TestUserService_Register(t *testing.T) {
	ts := setupServiceTest(t)
	ctx := context.Background()

	resp, err := ts.users.Register(ctx, RegisterRequest{
		Username: "jacob",
		Email:    "jake@example.com",
		Password: "jakejake",
	})
	require.NoError(t, err)

	assert.Equal(t, "jacob", resp.Username)
	assert.Equal(t, "jake@example.com", resp.Email)
	assert.Empty(t, resp.Bio)
	assert.Contains(t, resp.Image, "smiley-cyrus")
	assert.NotEmpty(t, resp.Token)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	ts := setupServiceTest(t)
	ctx := context.Background()

	registerTestUser(t, ts, "jacob", "jake@example.com")

	_, err := ts.users.Register(ctx, RegisterRequest{
		Username: "someoneelse",
		Email:    "Jake@Example.com", // Case differs, still the same account
		Password: "password",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
	assert.EqualError(t, err, "Email already exists")
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	ts := setupServiceTest(t)
	ctx := context.Background()

	registerTestUser(t, ts, "jacob", "jake@example.com")

	_, err := ts.users.Register(ctx, RegisterRequest{
		Username: "Jacob",
		Email:    "other@example.com",
		Password: "password",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
	assert.EqualError(t, err, "Username already exists")
}

func TestUserService_Register_Validation(t *testing.T) {
	ts := setupServiceTest(t)
	ctx := context.Background()

	_, err := ts.users.Register(ctx, RegisterRequest{
		Username: "ab", // Too short
		Email:    "not-an-email",
		Password: "pw",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestUserService_Login(t *testing.T) {
	ts := setupServiceTest(t)
	ctx := context.Background()

	registerTestUser(t, ts, "jacob", "jake@example.com")

	resp, err := ts.users.Login(ctx, LoginRequest{
		Email:    "jake@example.com",
		Password: "password",
	})
	require.NoError(t, err)
	assert.Equal(t, "jacob", resp.Username)
	assert.NotEmpty(t, resp.Token)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	ts := setupServiceTest(t)

	_, err := ts.users.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "password",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.EqualError(t, err, "User not found")
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	ts := setupServiceTest(t)

	registerTestUser(t, ts, "jacob", "jake@example.com")

	_, err := ts.users.Login(context.Background(), LoginRequest{
		Email:    "jake@example.com",
		Password: "wrongpass",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.EqualError(t, err, "email or password is incorrect")
}

func TestUserService_Update_Partial(t *testing.T) {
	ts := setupServiceTest(t)
	ctx := context.Background()

	viewer := registerTestUser(t, ts, "jacob", "jake@example.com")

	resp, err := ts.users.Update(ctx, viewer, UpdateUserRequest{
		Bio: "I work at statefarm",
	})
	require.NoError(t, err)

	// Untouched fields survive a partial update.
	assert.Equal(t, "jacob", resp.Username)
	assert.Equal(t, "jake@example.com", resp.Email)
	assert.Equal(t, "I work at statefarm", resp.Bio)
}

func TestUserService_Update_PasswordRehashed(t *testing.T) {
	ts := setupServiceTest(t)
	ctx := context.Background()

	viewer := registerTestUser(t, ts, "jacob", "jake@example.com")

	_, err := ts.users.Update(ctx, viewer, UpdateUserRequest{Password: "newsecret"})
	require.NoError(t, err)

	_, err = ts.users.Login(ctx, LoginRequest{Email: "jake@example.com", Password: "newsecret"})
	assert.NoError(t, err)

	_, err = ts.users.Login(ctx, LoginRequest{Email: "jake@example.com", Password: "password"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Update_UsernameConflict(t *testing.T) {
	ts := setupServiceTest(t)
	ctx := context.Background()

	registerTestUser(t, ts, "jacob", "jake@example.com")
	viewer := registerTestUser(t, ts, "celeb", "celeb@example.com")

	_, err := ts.users.Update(ctx, viewer, UpdateUserRequest{Username: "jacob"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
	assert.EqualError(t, err, "Username already exists")
}

func TestUserService_GetCurrent(t *testing.T) {
	ts := setupServiceTest(t)

	viewer := registerTestUser(t, ts, "jacob", "jake@example.com")

	resp, err := ts.users.GetCurrent(context.Background(), viewer)
	require.NoError(t, err)
	assert.Equal(t, "jacob", resp.Username)
}
