package store

import "github.com/conduitapp/conduit-server/internal/domain"

// initComments initializes the Comments entity on the store.
// Comments have no secondary indexes: they are fetched by ID through the
// owning article's comment-id sequence, which is also the display order.
func (s *Store) initComments() {
	s.Comments = NewEntity[domain.Comment](s, "comment:")
}
