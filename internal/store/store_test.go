package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduitapp/conduit-server/internal/domain"
	"github.com/conduitapp/conduit-server/internal/store"
)

func newUser(id, username, email string) *domain.User {
	u := &domain.User{
		Username: username,
		Email:    email,
		Image:    domain.DefaultUserImage,
	}
	u.ID = id
	u.InitTimestamps()
	return u
}

func newArticle(id, slug, title string, tags ...string) *domain.Article {
	a := &domain.Article{
		Slug:    slug,
		Title:   title,
		TagList: tags,
	}
	a.ID = id
	a.InitTimestamps()
	return a
}

func TestStore_UserEmailUniqueness(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users.Create(ctx, "user-1", newUser("user-1", "alice", "alice@example.com")))

	// Same email with different case, different username.
	err := s.Users.Create(ctx, "user-2", newUser("user-2", "bob", "Alice@Example.com"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	var conflict *store.IndexConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, store.UserIndexEmail, conflict.Index)
}

func TestStore_UserUsernameUniqueness(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users.Create(ctx, "user-1", newUser("user-1", "alice", "alice@example.com")))

	err := s.Users.Create(ctx, "user-2", newUser("user-2", "Alice", "other@example.com"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	var conflict *store.IndexConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, store.UserIndexUsername, conflict.Index)
}

func TestStore_GetUserByEmail(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users.Create(ctx, "user-1", newUser("user-1", "alice", "alice@example.com")))

	got, err := s.GetUserByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.ID)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_ArticleSlugUniqueness(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Articles.Create(ctx, "article-1", newArticle("article-1", "my-title", "My Title")))

	err := s.Articles.Create(ctx, "article-2", newArticle("article-2", "my-title", "My Title!"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestStore_GetArticleBySlug(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Articles.Create(ctx, "article-1", newArticle("article-1", "hello-world", "Hello World")))

	got, err := s.GetArticleBySlug(ctx, "hello-world")
	require.NoError(t, err)
	assert.Equal(t, "article-1", got.ID)
}

func TestStore_DistinctTags(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Articles.Create(ctx, "article-1", newArticle("article-1", "a", "A", "go", "db")))
	require.NoError(t, s.Articles.Create(ctx, "article-2", newArticle("article-2", "b", "B", "go", "web")))

	tags, err := s.DistinctTags(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"go", "db", "web"}, tags)
}

func TestStore_CountArticleFavorites(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	fan1 := newUser("user-1", "fan1", "fan1@example.com")
	fan1.Favorite("article-1")
	fan2 := newUser("user-2", "fan2", "fan2@example.com")
	fan2.Favorite("article-1")
	bystander := newUser("user-3", "bystander", "bystander@example.com")

	require.NoError(t, s.Users.Create(ctx, fan1.ID, fan1))
	require.NoError(t, s.Users.Create(ctx, fan2.ID, fan2))
	require.NoError(t, s.Users.Create(ctx, bystander.ID, bystander))

	count, err := s.CountArticleFavorites(ctx, "article-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = s.CountArticleFavorites(ctx, "article-2")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
