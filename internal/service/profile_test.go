package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduitapp/conduit-server/internal/domain"
	domainerrors "github.com/conduitapp/conduit-server/internal/errors"
)

func TestProfileService_Get_Anonymous(t *testing.T) {
	ts := setupServiceTest(t)

	registerTestUser(t, ts, "jacob", "jake@example.com")

	profile, err := ts.profiles.Get(context.Background(), "jacob", domain.Anonymous())
	require.NoError(t, err)

	assert.Equal(t, "jacob", profile.Username)
	assert.False(t, profile.Following)
}

func TestProfileService_Get_NotFound(t *testing.T) {
	ts := setupServiceTest(t)

	_, err := ts.profiles.Get(context.Background(), "nobody", domain.Anonymous())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProfileService_FollowUnfollow(t *testing.T) {
	ts := setupServiceTest(t)
	ctx := context.Background()

	follower := registerTestUser(t, ts, "jacob", "jake@example.com")
	registerTestUser(t, ts, "celeb", "celeb@example.com")

	profile, err := ts.profiles.Follow(ctx, follower, "celeb")
	require.NoError(t, err)
	assert.True(t, profile.Following)

	profile, err = ts.profiles.Get(ctx, "celeb", follower)
	require.NoError(t, err)
	assert.True(t, profile.Following)

	profile, err = ts.profiles.Unfollow(ctx, follower, "celeb")
	require.NoError(t, err)
	assert.False(t, profile.Following)
}

func TestProfileService_Follow_Idempotent(t *testing.T) {
	ts := setupServiceTest(t)
	ctx := context.Background()

	follower := registerTestUser(t, ts, "jacob", "jake@example.com")
	registerTestUser(t, ts, "celeb", "celeb@example.com")

	_, err := ts.profiles.Follow(ctx, follower, "celeb")
	require.NoError(t, err)
	_, err = ts.profiles.Follow(ctx, follower, "celeb")
	require.NoError(t, err)

	user, err := ts.store.Users.Get(ctx, follower.UserID)
	require.NoError(t, err)
	assert.Len(t, user.FollowingUserIDs, 1)
}

func TestProfileService_Follow_UnknownTarget(t *testing.T) {
	ts := setupServiceTest(t)

	follower := registerTestUser(t, ts, "jacob", "jake@example.com")

	_, err := ts.profiles.Follow(context.Background(), follower, "nobody")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
