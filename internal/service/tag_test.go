package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagService_List(t *testing.T) {
	ts := setupServiceTest(t)
	ctx := context.Background()

	author := registerTestUser(t, ts, "jacob", "jake@example.com")
	publishTestArticle(t, ts, author, "First", "go", "badger")
	publishTestArticle(t, ts, author, "Second", "go", "http")

	tags, err := ts.tags.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"go", "badger", "http"}, tags)
}

func TestTagService_List_Empty(t *testing.T) {
	ts := setupServiceTest(t)

	tags, err := ts.tags.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tags)
}
