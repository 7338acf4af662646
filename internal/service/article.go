package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/conduitapp/conduit-server/internal/domain"
	domainerrors "github.com/conduitapp/conduit-server/internal/errors"
	"github.com/conduitapp/conduit-server/internal/id"
	"github.com/conduitapp/conduit-server/internal/slug"
	"github.com/conduitapp/conduit-server/internal/store"
	"github.com/conduitapp/conduit-server/internal/validation"
)

// Listing defaults.
const (
	defaultListLimit  = 20
	defaultListOffset = 0
)

// ArticleService handles article CRUD, listings, the personalized feed and
// favorites.
type ArticleService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewArticleService creates a new article service.
func NewArticleService(store *store.Store, validator *validation.Validator, logger *slog.Logger) *ArticleService {
	return &ArticleService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateArticleRequest contains new article data.
type CreateArticleRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	Body        string   `json:"body"        validate:"required"`
	TagList     []string `json:"tagList"`
}

// UpdateArticleRequest contains a partial article update. The slug never
// changes, even when the title does.
type UpdateArticleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Body        string `json:"body"`
}

// ListArticlesRequest contains listing filters. Filters compose with AND
// semantics; zero values mean no filter.
type ListArticlesRequest struct {
	Tag       string
	Author    string
	Favorited string
	Limit     int
	Offset    int
}

// ArticleListResponse pairs a page of articles with the total count of the
// filtered set.
type ArticleListResponse struct {
	Articles      []ArticleResponse `json:"articles"`
	ArticlesCount int               `json:"articlesCount"`
}

// Create publishes a new article authored by the viewer. The slug is derived
// from the title once; a second article with the same derived slug fails
// with a conflict, backed by the unique slug index.
func (s *ArticleService) Create(ctx context.Context, viewer domain.Viewer, req CreateArticleRequest) (*ArticleResponse, error) {
	author, err := s.store.Users.Get(ctx, viewer.UserID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.Unauthorized("User not found")
		}
		return nil, fmt.Errorf("lookup author: %w", err)
	}

	if req.Title == "" || req.Description == "" || req.Body == "" {
		return nil, domainerrors.Validation("All fields are required")
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	articleSlug := slug.Make(req.Title)

	if _, err := s.store.GetArticleBySlug(ctx, articleSlug); err == nil {
		return nil, domainerrors.Conflict("Article already exists")
	} else if !domainerrors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check slug: %w", err)
	}

	articleID, err := id.Generate("article")
	if err != nil {
		return nil, fmt.Errorf("generate article ID: %w", err)
	}

	article := &domain.Article{
		Record:      domain.Record{ID: articleID},
		Slug:        articleSlug,
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		TagList:     req.TagList,
		AuthorID:    author.ID,
	}
	article.InitTimestamps()

	if err := s.store.Articles.Create(ctx, articleID, article); err != nil {
		var conflict *store.IndexConflictError
		if domainerrors.As(err, &conflict) {
			return nil, domainerrors.Conflict("Article already exists")
		}
		return nil, fmt.Errorf("create article: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Article published", "article_id", articleID, "slug", articleSlug)
	}

	resp := s.projectArticle(article, author, author)
	return &resp, nil
}

// Get returns the article with the given slug as seen by the viewer.
func (s *ArticleService) Get(ctx context.Context, articleSlug string, viewer domain.Viewer) (*ArticleResponse, error) {
	article, err := s.getBySlug(ctx, articleSlug)
	if err != nil {
		return nil, err
	}

	viewerUser, err := resolveViewer(ctx, s.store, viewer)
	if err != nil {
		return nil, fmt.Errorf("resolve viewer: %w", err)
	}

	return s.project(ctx, article, viewerUser)
}

// Update applies a partial update to an article. Only the author may update;
// anyone else is rejected before the patch is examined.
func (s *ArticleService) Update(ctx context.Context, viewer domain.Viewer, articleSlug string, req UpdateArticleRequest) (*ArticleResponse, error) {
	loginUser, err := s.store.Users.Get(ctx, viewer.UserID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("lookup viewer: %w", err)
	}

	article, err := s.getBySlug(ctx, articleSlug)
	if err != nil {
		return nil, err
	}

	if article.AuthorID != loginUser.ID {
		return nil, domainerrors.Unauthorized("You are not allowed to update this article")
	}

	if req.Title != "" {
		article.Title = req.Title
	}
	if req.Description != "" {
		article.Description = req.Description
	}
	if req.Body != "" {
		article.Body = req.Body
	}
	article.Touch()

	if err := s.store.Articles.Update(ctx, article.ID, article); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	resp := s.projectArticle(article, loginUser, loginUser)
	return &resp, nil
}

// Delete removes an article and all its comments. Only the author may
// delete.
func (s *ArticleService) Delete(ctx context.Context, viewer domain.Viewer, articleSlug string) error {
	loginUser, err := s.store.Users.Get(ctx, viewer.UserID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("User not found")
		}
		return fmt.Errorf("lookup viewer: %w", err)
	}

	article, err := s.getBySlug(ctx, articleSlug)
	if err != nil {
		return err
	}

	if article.AuthorID != loginUser.ID {
		return domainerrors.Forbidden("Only the author can delete his article")
	}

	for _, commentID := range article.CommentIDs {
		if err := s.store.Comments.Delete(ctx, commentID); err != nil {
			return fmt.Errorf("delete comment %s: %w", commentID, err)
		}
	}

	if err := s.store.Articles.Delete(ctx, article.ID); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Article deleted", "article_id", article.ID, "slug", articleSlug)
	}

	return nil
}

// List returns a page of articles matching the filters, newest first, plus
// the total count of the filtered set.
func (s *ArticleService) List(ctx context.Context, viewer domain.Viewer, req ListArticlesRequest) (*ArticleListResponse, error) {
	articles, err := s.store.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	// Resolve username filters to user records. An unknown username matches
	// nothing rather than failing the request.
	var authorFilter *domain.User
	if req.Author != "" {
		authorFilter, err = s.store.GetUserByUsername(ctx, req.Author)
		if err != nil && !domainerrors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("lookup author filter: %w", err)
		}
		if authorFilter == nil {
			return s.projectPage(ctx, nil, 0, viewer)
		}
	}

	var favoritedFilter *domain.User
	if req.Favorited != "" {
		favoritedFilter, err = s.store.GetUserByUsername(ctx, req.Favorited)
		if err != nil && !domainerrors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("lookup favorited filter: %w", err)
		}
		if favoritedFilter == nil {
			return s.projectPage(ctx, nil, 0, viewer)
		}
	}

	filtered := make([]*domain.Article, 0, len(articles))
	for _, article := range articles {
		if req.Tag != "" && !article.HasTag(req.Tag) {
			continue
		}
		if authorFilter != nil && article.AuthorID != authorFilter.ID {
			continue
		}
		if favoritedFilter != nil && !favoritedFilter.IsFavorite(article.ID) {
			continue
		}
		filtered = append(filtered, article)
	}

	page := paginate(filtered, req.Limit, req.Offset)
	return s.projectPage(ctx, page, len(filtered), viewer)
}

// Feed returns a page of articles authored by users the viewer follows,
// newest first.
func (s *ArticleService) Feed(ctx context.Context, viewer domain.Viewer, limit, offset int) (*ArticleListResponse, error) {
	loginUser, err := s.store.Users.Get(ctx, viewer.UserID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("lookup viewer: %w", err)
	}

	articles, err := s.store.ListArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	filtered := make([]*domain.Article, 0, len(articles))
	for _, article := range articles {
		if loginUser.IsFollowing(article.AuthorID) {
			filtered = append(filtered, article)
		}
	}

	page := paginate(filtered, limit, offset)
	return s.projectPage(ctx, page, len(filtered), viewer)
}

// Favorite marks the article as a favorite of the viewer and recounts its
// favorites. Favoriting twice is a no-op.
func (s *ArticleService) Favorite(ctx context.Context, viewer domain.Viewer, articleSlug string) (*ArticleResponse, error) {
	return s.setFavorite(ctx, viewer, articleSlug, true)
}

// Unfavorite removes the article from the viewer's favorite set and recounts
// its favorites. Unfavoriting a non-favorite is a no-op.
func (s *ArticleService) Unfavorite(ctx context.Context, viewer domain.Viewer, articleSlug string) (*ArticleResponse, error) {
	return s.setFavorite(ctx, viewer, articleSlug, false)
}

func (s *ArticleService) setFavorite(ctx context.Context, viewer domain.Viewer, articleSlug string, favorite bool) (*ArticleResponse, error) {
	loginUser, err := s.store.Users.Get(ctx, viewer.UserID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("lookup viewer: %w", err)
	}

	article, err := s.getBySlug(ctx, articleSlug)
	if err != nil {
		return nil, err
	}

	if favorite {
		loginUser.Favorite(article.ID)
	} else {
		loginUser.Unfavorite(article.ID)
	}
	loginUser.Touch()

	if err := s.store.Users.Update(ctx, loginUser.ID, loginUser); err != nil {
		return nil, fmt.Errorf("update favorite set: %w", err)
	}

	if err := s.RecomputeFavoritesCount(ctx, article); err != nil {
		return nil, err
	}

	return s.project(ctx, article, loginUser)
}

// RecomputeFavoritesCount recounts the users favoriting the article and
// persists the result. Always a full recount, never an increment; concurrent
// toggles settle on last-write-wins.
func (s *ArticleService) RecomputeFavoritesCount(ctx context.Context, article *domain.Article) error {
	count, err := s.store.CountArticleFavorites(ctx, article.ID)
	if err != nil {
		return fmt.Errorf("count favorites: %w", err)
	}

	article.FavoritesCount = count
	article.Touch()

	if err := s.store.Articles.Update(ctx, article.ID, article); err != nil {
		return fmt.Errorf("persist favorites count: %w", err)
	}
	return nil
}

// getBySlug loads an article, mapping a miss to the public not-found error.
func (s *ArticleService) getBySlug(ctx context.Context, articleSlug string) (*domain.Article, error) {
	article, err := s.store.GetArticleBySlug(ctx, articleSlug)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("Article not found")
		}
		return nil, fmt.Errorf("lookup article: %w", err)
	}
	return article, nil
}

// project builds the viewer-relative response for an article, loading its
// author.
func (s *ArticleService) project(ctx context.Context, article *domain.Article, viewerUser *domain.User) (*ArticleResponse, error) {
	author, err := s.store.Users.Get(ctx, article.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("lookup article author: %w", err)
	}
	resp := s.projectArticle(article, author, viewerUser)
	return &resp, nil
}

// projectArticle shapes an article response from already-loaded records.
func (s *ArticleService) projectArticle(article *domain.Article, author, viewerUser *domain.User) ArticleResponse {
	favorited := false
	if viewerUser != nil {
		favorited = viewerUser.IsFavorite(article.ID)
	}
	tagList := article.TagList
	if tagList == nil {
		tagList = []string{}
	}
	return ArticleResponse{
		Slug:           article.Slug,
		Title:          article.Title,
		Description:    article.Description,
		Body:           article.Body,
		TagList:        tagList,
		CreatedAt:      article.CreatedAt,
		UpdatedAt:      article.UpdatedAt,
		Favorited:      favorited,
		FavoritesCount: article.FavoritesCount,
		Author:         profileOf(author, viewerUser),
	}
}

// projectPage shapes a page of articles plus the filtered total.
func (s *ArticleService) projectPage(ctx context.Context, page []*domain.Article, total int, viewer domain.Viewer) (*ArticleListResponse, error) {
	viewerUser, err := resolveViewer(ctx, s.store, viewer)
	if err != nil {
		return nil, fmt.Errorf("resolve viewer: %w", err)
	}

	responses := make([]ArticleResponse, 0, len(page))
	for _, article := range page {
		resp, err := s.project(ctx, article, viewerUser)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}

	return &ArticleListResponse{
		Articles:      responses,
		ArticlesCount: total,
	}, nil
}

// paginate sorts newest-first and slices out the requested window.
func paginate(articles []*domain.Article, limit, offset int) []*domain.Article {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = defaultListOffset
	}

	sorted := slices.Clone(articles)
	slices.SortFunc(sorted, func(a, b *domain.Article) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	if offset >= len(sorted) {
		return nil
	}
	end := min(offset+limit, len(sorted))
	return sorted[offset:end]
}
