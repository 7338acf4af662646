package store

import (
	"context"

	"github.com/conduitapp/conduit-server/internal/domain"
)

// ArticleIndexSlug is the unique slug index on the Articles entity.
const ArticleIndexSlug = "slug"

// initArticles initializes the Articles entity on the store.
// The slug index is unique, so two concurrent creations with the same
// derived slug cannot both commit; the loser fails with IndexConflictError.
func (s *Store) initArticles() {
	s.Articles = NewEntity[domain.Article](s, "article:").
		WithIndex(ArticleIndexSlug, func(a *domain.Article) []string {
			return []string{a.Slug}
		})
}

// GetArticleBySlug retrieves an article by its slug.
func (s *Store) GetArticleBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	return s.Articles.GetByIndex(ctx, ArticleIndexSlug, slug)
}

// ListArticles returns all articles as a slice.
// Filtering, ordering and paging happen in the service layer; the article
// corpus is read in full either way since listings are sorted by creation
// time, which Badger's key order does not provide.
func (s *Store) ListArticles(ctx context.Context) ([]*domain.Article, error) {
	var articles []*domain.Article
	for article, err := range s.Articles.List(ctx) {
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// DistinctTags returns the union of all articles' tag lists.
// Order follows first appearance during iteration.
func (s *Store) DistinctTags(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	tags := make([]string, 0)
	for article, err := range s.Articles.List(ctx) {
		if err != nil {
			return nil, err
		}
		for _, tag := range article.TagList {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags, nil
}
