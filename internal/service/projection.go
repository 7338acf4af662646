package service

import (
	"context"
	"time"

	"github.com/conduitapp/conduit-server/internal/domain"
	domainerrors "github.com/conduitapp/conduit-server/internal/errors"
	"github.com/conduitapp/conduit-server/internal/store"
)

// ProfileResponse is the public projection of a user as seen by a viewer.
type ProfileResponse struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

// UserResponse is the authenticated projection of an account. Token is
// freshly issued on every projection so each response carries a live
// credential.
type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
	Token    string `json:"token"`
}

// ArticleResponse is the viewer-relative projection of an article.
type ArticleResponse struct {
	Slug           string          `json:"slug"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Body           string          `json:"body"`
	TagList        []string        `json:"tagList"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	Favorited      bool            `json:"favorited"`
	FavoritesCount int             `json:"favoritesCount"`
	Author         ProfileResponse `json:"author"`
}

// CommentResponse is the viewer-relative projection of a comment.
type CommentResponse struct {
	ID        string          `json:"id"`
	Body      string          `json:"body"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Author    ProfileResponse `json:"author"`
}

// profileOf projects a user as seen by the given viewer. A nil viewer is
// anonymous and always sees following=false.
func profileOf(subject *domain.User, viewer *domain.User) ProfileResponse {
	following := false
	if viewer != nil {
		following = viewer.IsFollowing(subject.ID)
	}
	return ProfileResponse{
		Username:  subject.Username,
		Bio:       subject.Bio,
		Image:     subject.Image,
		Following: following,
	}
}

// resolveViewer loads the full user record behind an authenticated viewer.
// Anonymous viewers resolve to nil with no error; a viewer whose account no
// longer exists also resolves to nil, so projections degrade to anonymous
// rather than failing the whole response.
func resolveViewer(ctx context.Context, s *store.Store, viewer domain.Viewer) (*domain.User, error) {
	if !viewer.Authenticated {
		return nil, nil
	}
	user, err := s.Users.Get(ctx, viewer.UserID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
