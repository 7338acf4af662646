package domain

// Comment represents a comment left on an article.
// It references its author and parent article by ID; the article's CommentIDs
// index decides display order.
type Comment struct {
	Record
	Body      string `json:"body"`
	AuthorID  string `json:"author_id"`
	ArticleID string `json:"article_id"`
}
