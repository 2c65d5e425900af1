package docstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-hub/portfolio-backend/internal/apperr"
	"github.com/portfolio-hub/portfolio-backend/internal/docstore"
)

// runStoreContract exercises the behaviour every backend must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) docstore.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("add then get returns the stored fields", func(t *testing.T) {
		s := newStore(t)
		id, err := s.Add(ctx, "messages", map[string]any{
			"name":      "Ada",
			"read":      false,
			"createdAt": "2024-03-01T10:00:00.000Z",
		})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		doc, err := s.Get(ctx, "messages", id)
		require.NoError(t, err)
		assert.Equal(t, id, doc.ID)
		assert.Equal(t, "Ada", doc.Fields["name"])
		assert.Equal(t, false, doc.Fields["read"])
	})

	t.Run("ids are unique", func(t *testing.T) {
		s := newStore(t)
		seen := map[string]bool{}
		for i := 0; i < 20; i++ {
			id, err := s.Add(ctx, "messages", map[string]any{"createdAt": "2024-03-01T10:00:00.000Z"})
			require.NoError(t, err)
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	})

	t.Run("get of a missing document is not found", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, "messages", "nope")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("update merges fields", func(t *testing.T) {
		s := newStore(t)
		id, err := s.Add(ctx, "projects", map[string]any{
			"title":     "Foo",
			"category":  "Web",
			"createdAt": "2024-03-01T10:00:00.000Z",
		})
		require.NoError(t, err)

		require.NoError(t, s.Update(ctx, "projects", id, map[string]any{"title": "Bar"}))

		doc, err := s.Get(ctx, "projects", id)
		require.NoError(t, err)
		assert.Equal(t, "Bar", doc.Fields["title"])
		assert.Equal(t, "Web", doc.Fields["category"])
	})

	t.Run("update of a missing document is not found", func(t *testing.T) {
		s := newStore(t)
		err := s.Update(ctx, "projects", "ghost", map[string]any{"title": "x"})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		s := newStore(t)
		id, err := s.Add(ctx, "messages", map[string]any{"createdAt": "2024-03-01T10:00:00.000Z"})
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, "messages", id))
		require.NoError(t, s.Delete(ctx, "messages", id))
		require.NoError(t, s.Delete(ctx, "messages", "never-existed"))

		_, err = s.Get(ctx, "messages", id)
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		docs, err := s.List(ctx, "messages", "createdAt")
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("list orders newest first", func(t *testing.T) {
		s := newStore(t)
		for _, ts := range []string{
			"2024-03-01T10:00:00.000Z",
			"2024-03-03T10:00:00.000Z",
			"2024-03-02T10:00:00.000Z",
		} {
			_, err := s.Add(ctx, "messages", map[string]any{"createdAt": ts})
			require.NoError(t, err)
		}

		docs, err := s.List(ctx, "messages", "createdAt")
		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.Equal(t, "2024-03-03T10:00:00.000Z", docs[0].Fields["createdAt"])
		assert.Equal(t, "2024-03-02T10:00:00.000Z", docs[1].Fields["createdAt"])
		assert.Equal(t, "2024-03-01T10:00:00.000Z", docs[2].Fields["createdAt"])
	})

	t.Run("list of an empty collection is empty, not nil", func(t *testing.T) {
		s := newStore(t)
		docs, err := s.List(ctx, "projects", "createdAt")
		require.NoError(t, err)
		assert.NotNil(t, docs)
		assert.Empty(t, docs)
	})

	t.Run("collections are isolated", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Add(ctx, "messages", map[string]any{"createdAt": "2024-03-01T10:00:00.000Z"})
		require.NoError(t, err)

		docs, err := s.List(ctx, "projects", "createdAt")
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("ping succeeds", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Ping(ctx))
	})
}
