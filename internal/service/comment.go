package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/conduitapp/conduit-server/internal/domain"
	domainerrors "github.com/conduitapp/conduit-server/internal/errors"
	"github.com/conduitapp/conduit-server/internal/id"
	"github.com/conduitapp/conduit-server/internal/store"
	"github.com/conduitapp/conduit-server/internal/validation"
)

// CommentService handles comments scoped to an article.
type CommentService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(store *store.Store, validator *validation.Validator, logger *slog.Logger) *CommentService {
	return &CommentService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateCommentRequest contains new comment data.
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required"`
}

// Create adds a comment to the article with the given slug and registers it
// in the article's comment index, which fixes its display position.
func (s *CommentService) Create(ctx context.Context, viewer domain.Viewer, articleSlug string, req CreateCommentRequest) (*CommentResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	commenter, err := s.store.Users.Get(ctx, viewer.UserID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("lookup commenter: %w", err)
	}

	article, err := s.store.GetArticleBySlug(ctx, articleSlug)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("Article not found")
		}
		return nil, fmt.Errorf("lookup article: %w", err)
	}

	commentID, err := id.Generate("comment")
	if err != nil {
		return nil, fmt.Errorf("generate comment ID: %w", err)
	}

	comment := &domain.Comment{
		Record:    domain.Record{ID: commentID},
		Body:      req.Body,
		AuthorID:  commenter.ID,
		ArticleID: article.ID,
	}
	comment.InitTimestamps()

	if err := s.store.Comments.Create(ctx, commentID, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	article.AddCommentID(commentID)
	article.Touch()
	if err := s.store.Articles.Update(ctx, article.ID, article); err != nil {
		return nil, fmt.Errorf("register comment on article: %w", err)
	}

	resp := projectComment(comment, commenter, commenter)
	return &resp, nil
}

// ListForArticle returns the article's comments in stored index order.
func (s *CommentService) ListForArticle(ctx context.Context, viewer domain.Viewer, articleSlug string) ([]CommentResponse, error) {
	article, err := s.store.GetArticleBySlug(ctx, articleSlug)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("Article not found")
		}
		return nil, fmt.Errorf("lookup article: %w", err)
	}

	viewerUser, err := resolveViewer(ctx, s.store, viewer)
	if err != nil {
		return nil, fmt.Errorf("resolve viewer: %w", err)
	}

	responses := make([]CommentResponse, 0, len(article.CommentIDs))
	for _, commentID := range article.CommentIDs {
		comment, err := s.store.Comments.Get(ctx, commentID)
		if err != nil {
			if domainerrors.Is(err, store.ErrNotFound) {
				// Dangling index entry; skip rather than fail the listing.
				continue
			}
			return nil, fmt.Errorf("load comment %s: %w", commentID, err)
		}

		author, err := s.store.Users.Get(ctx, comment.AuthorID)
		if err != nil {
			if domainerrors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("load comment author: %w", err)
		}

		responses = append(responses, projectComment(comment, author, viewerUser))
	}

	return responses, nil
}

// Delete removes a comment from an article.
//
// The authorization rule is inverted on purpose: every authenticated user
// EXCEPT the comment's author may delete it.
// TODO: confirm with product whether this should be author-only instead.
func (s *CommentService) Delete(ctx context.Context, viewer domain.Viewer, articleSlug, commentID string) error {
	loginUser, err := s.store.Users.Get(ctx, viewer.UserID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("User not found")
		}
		return fmt.Errorf("lookup viewer: %w", err)
	}

	article, err := s.store.GetArticleBySlug(ctx, articleSlug)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("Article not found")
		}
		return fmt.Errorf("lookup article: %w", err)
	}

	comment, err := s.store.Comments.Get(ctx, commentID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("Comment not found")
		}
		return fmt.Errorf("lookup comment: %w", err)
	}

	if comment.ArticleID != article.ID {
		return domainerrors.NotFound("Comment not found")
	}

	if comment.AuthorID == loginUser.ID {
		return domainerrors.Forbidden("You are not allowed to delete this comment")
	}

	if err := s.store.Comments.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	article.RemoveCommentID(commentID)
	article.Touch()
	if err := s.store.Articles.Update(ctx, article.ID, article); err != nil {
		return fmt.Errorf("unregister comment on article: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Comment deleted", "comment_id", commentID, "article_id", article.ID)
	}

	return nil
}

// projectComment shapes a comment response from already-loaded records.
func projectComment(comment *domain.Comment, author, viewerUser *domain.User) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Author:    profileOf(author, viewerUser),
	}
}
