package domain

import "slices"

// DefaultUserImage is the profile image assigned to accounts that never set one.
const DefaultUserImage = "https://static.productionready.io/images/smiley-cyrus.jpg"

// User represents a registered account.
//
// FavoriteArticleIDs and FollowingUserIDs are membership sets stored as
// slices; order carries no meaning and mutations are idempotent. The article
// side owns the derived favorites count, recomputed from these sets.
type User struct {
	Record
	Username           string   `json:"username"`
	Email              string   `json:"email"`
	PasswordHash       string   `json:"password_hash,omitempty"` // Stored hashed, never serialized to API responses
	Bio                string   `json:"bio"`
	Image              string   `json:"image"`
	FavoriteArticleIDs []string `json:"favorite_article_ids"`
	FollowingUserIDs   []string `json:"following_user_ids"`
}

// IsFollowing reports whether the user follows the given user ID.
func (u *User) IsFollowing(userID string) bool {
	return slices.Contains(u.FollowingUserIDs, userID)
}

// Follow adds the given user ID to the following set.
// Following an already-followed user is a no-op.
func (u *User) Follow(userID string) {
	if !slices.Contains(u.FollowingUserIDs, userID) {
		u.FollowingUserIDs = append(u.FollowingUserIDs, userID)
	}
}

// Unfollow removes the given user ID from the following set.
// Unfollowing a not-followed user is a no-op.
func (u *User) Unfollow(userID string) {
	u.FollowingUserIDs = slices.DeleteFunc(u.FollowingUserIDs, func(id string) bool {
		return id == userID
	})
}

// IsFavorite reports whether the user has favorited the given article ID.
func (u *User) IsFavorite(articleID string) bool {
	return slices.Contains(u.FavoriteArticleIDs, articleID)
}

// Favorite adds the given article ID to the favorite set.
// Favoriting an already-favorited article is a no-op.
func (u *User) Favorite(articleID string) {
	if !slices.Contains(u.FavoriteArticleIDs, articleID) {
		u.FavoriteArticleIDs = append(u.FavoriteArticleIDs, articleID)
	}
}

// Unfavorite removes the given article ID from the favorite set.
// Unfavoriting a not-favorited article is a no-op.
func (u *User) Unfavorite(articleID string) {
	u.FavoriteArticleIDs = slices.DeleteFunc(u.FavoriteArticleIDs, func(id string) bool {
		return id == articleID
	})
}
