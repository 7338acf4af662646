package store

import (
	"context"
	"strings"

	"github.com/conduitapp/conduit-server/internal/domain"
)

// Index names on the Users entity.
const (
	UserIndexEmail    = "email"
	UserIndexUsername = "username"
)

// initUsers initializes the Users entity on the store.
// Email and username are unique indexes with case-insensitive lookups, so
// the write transaction itself rejects duplicate registrations regardless
// of what the service layer pre-checked.
func (s *Store) initUsers() {
	s.Users = NewEntity[domain.User](s, "user:").
		WithIndexTransform(UserIndexEmail,
			func(u *domain.User) []string {
				return []string{NormalizeEmail(u.Email)}
			},
			NormalizeEmail,
		).
		WithIndexTransform(UserIndexUsername,
			func(u *domain.User) []string {
				return []string{NormalizeUsername(u.Username)}
			},
			NormalizeUsername,
		)
}

// GetUserByEmail retrieves a user by email, case-insensitively.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.Users.GetByIndex(ctx, UserIndexEmail, email)
}

// GetUserByUsername retrieves a user by username, case-insensitively.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.Users.GetByIndex(ctx, UserIndexUsername, username)
}

// CountArticleFavorites counts the users whose favorite set contains the
// given article. Full scan: the favorites count on an article is always
// recomputed from the user documents, never incremented.
func (s *Store) CountArticleFavorites(ctx context.Context, articleID string) (int, error) {
	count := 0
	for user, err := range s.Users.List(ctx) {
		if err != nil {
			return 0, err
		}
		if user.IsFavorite(articleID) {
			count++
		}
	}
	return count, nil
}

// NormalizeEmail lowercases and trims an email for index keys and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeUsername lowercases and trims a username for index keys and lookups.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
