package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_FollowIdempotent(t *testing.T) {
	user := &User{}

	user.Follow("user-abc")
	user.Follow("user-abc")

	assert.Len(t, user.FollowingUserIDs, 1, "double follow should not grow the set")
	assert.True(t, user.IsFollowing("user-abc"))
}

func TestUser_UnfollowIdempotent(t *testing.T) {
	user := &User{FollowingUserIDs: []string{"user-abc"}}

	user.Unfollow("user-abc")
	user.Unfollow("user-abc")

	assert.Empty(t, user.FollowingUserIDs)
	assert.False(t, user.IsFollowing("user-abc"))
}

func TestUser_FavoriteRoundTrip(t *testing.T) {
	user := &User{}

	user.Favorite("article-1")
	assert.True(t, user.IsFavorite("article-1"))

	user.Unfavorite("article-1")
	assert.False(t, user.IsFavorite("article-1"))
	assert.Empty(t, user.FavoriteArticleIDs)
}

func TestUser_IsFollowingUnknown(t *testing.T) {
	user := &User{FollowingUserIDs: []string{"user-a", "user-b"}}

	assert.False(t, user.IsFollowing("user-c"))
}
