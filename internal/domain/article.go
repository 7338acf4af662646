package domain

import "slices"

// Article represents a published article.
//
// Slug is derived from the title once at creation and never changes.
// FavoritesCount is derived state: it always equals the number of users whose
// favorite set contains this article, recomputed after every
// favorite/unfavorite. CommentIDs is a membership index in insertion order,
// which is also the display order for comments.
type Article struct {
	Record
	Slug           string   `json:"slug"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Body           string   `json:"body"`
	TagList        []string `json:"tag_list"`
	AuthorID       string   `json:"author_id"`
	FavoritesCount int      `json:"favorites_count"`
	CommentIDs     []string `json:"comment_ids"`
}

// HasTag reports whether the article carries the given tag.
func (a *Article) HasTag(tag string) bool {
	return slices.Contains(a.TagList, tag)
}

// AddCommentID appends a comment ID to the article's comment index.
// Adding an already-present ID is a no-op so insertion order is preserved.
func (a *Article) AddCommentID(commentID string) {
	if !slices.Contains(a.CommentIDs, commentID) {
		a.CommentIDs = append(a.CommentIDs, commentID)
	}
}

// RemoveCommentID removes a comment ID from the article's comment index.
// Removing an absent ID is a no-op.
func (a *Article) RemoveCommentID(commentID string) {
	a.CommentIDs = slices.DeleteFunc(a.CommentIDs, func(id string) bool {
		return id == commentID
	})
}
