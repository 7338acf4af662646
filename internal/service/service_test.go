package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/conduitapp/conduit-server/internal/auth"
	"github.com/conduitapp/conduit-server/internal/domain"
	"github.com/conduitapp/conduit-server/internal/store"
	"github.com/conduitapp/conduit-server/internal/validation"
)

// testServices bundles every service over one temporary store.
type testServices struct {
	store    *store.Store
	users    *UserService
	profiles *ProfileService
	articles *ArticleService
	comments *CommentService
	tags     *TagService
}

// setupServiceTest creates services with temporary storage for testing.
func setupServiceTest(t *testing.T) *testServices {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "conduit-service-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.New(dbPath, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	})

	authKey, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(authKey, 24*time.Hour)
	require.NoError(t, err)

	validator := validation.New()

	return &testServices{
		store:    s,
		users:    NewUserService(s, tokenService, validator, nil),
		profiles: NewProfileService(s, nil),
		articles: NewArticleService(s, validator, nil),
		comments: NewCommentService(s, validator, nil),
		tags:     NewTagService(s),
	}
}

// registerTestUser registers an account and returns its viewer identity.
func registerTestUser(t *testing.T, ts *testServices, username, email string) domain.Viewer {
	t.Helper()

	_, err := ts.users.Register(context.Background(), RegisterRequest{
		Username: username,
		Email:    email,
		Password: "password",
	})
	require.NoError(t, err)

	user, err := ts.store.GetUserByEmail(context.Background(), email)
	require.NoError(t, err)

	return domain.AuthenticatedViewer(user.ID, user.Email)
}

// publishTestArticle creates an article authored by the given viewer.
func publishTestArticle(t *testing.T, ts *testServices, author domain.Viewer, title string, tags ...string) *ArticleResponse {
	t.Helper()

	article, err := ts.articles.Create(context.Background(), author, CreateArticleRequest{
		Title:       title,
		Description: "A description",
		Body:        "A body",
		TagList:     tags,
	})
	require.NoError(t, err)
	return article
}
