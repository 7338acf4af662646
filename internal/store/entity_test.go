package store_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduitapp/conduit-server/internal/store"
)

type TestEntity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "entity-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.New(dbPath, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	})

	return s
}

func TestEntity_Create_Success(t *testing.T) {
	s := setupTestStore(t)

	entity := store.NewEntity[TestEntity](s, "test:")

	testData := &TestEntity{
		ID:    "1",
		Name:  "John Doe",
		Email: "john@example.com",
	}

	err := entity.Create(context.Background(), "1", testData)
	require.NoError(t, err)

	retrieved, err := entity.Get(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, testData.ID, retrieved.ID)
	require.Equal(t, testData.Name, retrieved.Name)
	require.Equal(t, testData.Email, retrieved.Email)
}

func TestEntity_Create_AlreadyExists(t *testing.T) {
	s := setupTestStore(t)

	entity := store.NewEntity[TestEntity](s, "test:")

	testData := &TestEntity{ID: "1", Name: "John Doe"}

	err := entity.Create(context.Background(), "1", testData)
	require.NoError(t, err)

	err = entity.Create(context.Background(), "1", testData)
	require.Error(t, err)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestEntity_Get_NotFound(t *testing.T) {
	s := setupTestStore(t)

	entity := store.NewEntity[TestEntity](s, "test:")

	_, err := entity.Get(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_UniqueIndexConflict(t *testing.T) {
	s := setupTestStore(t)

	entity := store.NewEntity[TestEntity](s, "test:").
		WithIndex("email", func(e *TestEntity) []string {
			return []string{e.Email}
		})

	err := entity.Create(context.Background(), "1", &TestEntity{ID: "1", Email: "shared@example.com"})
	require.NoError(t, err)

	// Different ID, same indexed email: the transaction must refuse it.
	err = entity.Create(context.Background(), "2", &TestEntity{ID: "2", Email: "shared@example.com"})
	require.Error(t, err)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	var conflict *store.IndexConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Index)
	assert.Equal(t, "shared@example.com", conflict.Value)
}

func TestEntity_Update_ReleasesOldIndexKey(t *testing.T) {
	s := setupTestStore(t)

	entity := store.NewEntity[TestEntity](s, "test:").
		WithIndex("email", func(e *TestEntity) []string {
			return []string{e.Email}
		})

	require.NoError(t, entity.Create(context.Background(), "1", &TestEntity{ID: "1", Email: "old@example.com"}))
	require.NoError(t, entity.Update(context.Background(), "1", &TestEntity{ID: "1", Email: "new@example.com"}))

	// Old index value is free again.
	require.NoError(t, entity.Create(context.Background(), "2", &TestEntity{ID: "2", Email: "old@example.com"}))

	// New index value points at the updated entity.
	got, err := entity.GetByIndex(context.Background(), "email", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)
}

func TestEntity_Update_IndexConflict(t *testing.T) {
	s := setupTestStore(t)

	entity := store.NewEntity[TestEntity](s, "test:").
		WithIndex("email", func(e *TestEntity) []string {
			return []string{e.Email}
		})

	require.NoError(t, entity.Create(context.Background(), "1", &TestEntity{ID: "1", Email: "a@example.com"}))
	require.NoError(t, entity.Create(context.Background(), "2", &TestEntity{ID: "2", Email: "b@example.com"}))

	err := entity.Update(context.Background(), "2", &TestEntity{ID: "2", Email: "a@example.com"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestEntity_Delete_Idempotent(t *testing.T) {
	s := setupTestStore(t)

	entity := store.NewEntity[TestEntity](s, "test:").
		WithIndex("email", func(e *TestEntity) []string {
			return []string{e.Email}
		})

	require.NoError(t, entity.Create(context.Background(), "1", &TestEntity{ID: "1", Email: "gone@example.com"}))
	require.NoError(t, entity.Delete(context.Background(), "1"))
	require.NoError(t, entity.Delete(context.Background(), "1"))

	_, err := entity.Get(context.Background(), "1")
	require.ErrorIs(t, err, store.ErrNotFound)

	// Index key cleaned up too.
	_, err = entity.GetByIndex(context.Background(), "email", "gone@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_List_SkipsIndexKeys(t *testing.T) {
	s := setupTestStore(t)

	entity := store.NewEntity[TestEntity](s, "test:").
		WithIndex("email", func(e *TestEntity) []string {
			return []string{e.Email}
		})

	for i := range 5 {
		id := fmt.Sprintf("%d", i)
		err := entity.Create(context.Background(), id, &TestEntity{ID: id, Email: id + "@example.com"})
		require.NoError(t, err)
	}

	count := 0
	for _, err := range entity.List(context.Background()) {
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 5, count)
}

func TestEntity_GetByIndex_Transform(t *testing.T) {
	s := setupTestStore(t)

	entity := store.NewEntity[TestEntity](s, "test:").
		WithIndexTransform("email",
			func(e *TestEntity) []string { return []string{store.NormalizeEmail(e.Email)} },
			store.NormalizeEmail,
		)

	require.NoError(t, entity.Create(context.Background(), "1", &TestEntity{ID: "1", Email: "Mixed@Example.COM"}))

	got, err := entity.GetByIndex(context.Background(), "email", "  mixed@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)
}
