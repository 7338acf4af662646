package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/conduitapp/conduit-server/internal/domain"
	domainerrors "github.com/conduitapp/conduit-server/internal/errors"
	"github.com/conduitapp/conduit-server/internal/store"
)

// ProfileService handles public profile lookups and the follow graph.
type ProfileService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(store *store.Store, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		store:  store,
		logger: logger,
	}
}

// Get returns the profile of the named user as seen by the viewer.
// Anonymous viewers always see following=false.
func (s *ProfileService) Get(ctx context.Context, username string, viewer domain.Viewer) (*ProfileResponse, error) {
	subject, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("lookup profile: %w", err)
	}

	viewerUser, err := resolveViewer(ctx, s.store, viewer)
	if err != nil {
		return nil, fmt.Errorf("resolve viewer: %w", err)
	}

	profile := profileOf(subject, viewerUser)
	return &profile, nil
}

// Follow adds the named user to the viewer's following set and returns the
// updated profile. Following an already-followed user is a no-op.
func (s *ProfileService) Follow(ctx context.Context, viewer domain.Viewer, username string) (*ProfileResponse, error) {
	return s.setFollowing(ctx, viewer, username, true)
}

// Unfollow removes the named user from the viewer's following set and
// returns the updated profile. Unfollowing a not-followed user is a no-op.
func (s *ProfileService) Unfollow(ctx context.Context, viewer domain.Viewer, username string) (*ProfileResponse, error) {
	return s.setFollowing(ctx, viewer, username, false)
}

func (s *ProfileService) setFollowing(ctx context.Context, viewer domain.Viewer, username string, follow bool) (*ProfileResponse, error) {
	loginUser, err := s.store.Users.Get(ctx, viewer.UserID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("lookup viewer: %w", err)
	}

	subject, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("lookup profile: %w", err)
	}

	if follow {
		loginUser.Follow(subject.ID)
	} else {
		loginUser.Unfollow(subject.ID)
	}
	loginUser.Touch()

	if err := s.store.Users.Update(ctx, loginUser.ID, loginUser); err != nil {
		return nil, fmt.Errorf("update follow set: %w", err)
	}

	profile := profileOf(subject, loginUser)
	return &profile, nil
}
