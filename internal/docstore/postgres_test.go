package docstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-hub/portfolio-backend/internal/apperr"
	"github.com/portfolio-hub/portfolio-backend/internal/docstore"
)

func setupPostgresStore(t *testing.T) (*docstore.PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return docstore.NewPostgresStore(mock), mock
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := setupPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS documents`).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Add(t *testing.T) {
	s, mock := setupPostgresStore(t)

	mock.ExpectExec(`INSERT INTO documents`).
		WithArgs("messages", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	id, err := s.Add(context.Background(), "messages", map[string]any{"name": "Ada"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		s, mock := setupPostgresStore(t)
		mock.ExpectQuery(`SELECT data FROM documents`).
			WithArgs("projects", "p1").
			WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow([]byte(`{"title":"Foo","tags":["go"]}`)))

		doc, err := s.Get(context.Background(), "projects", "p1")
		require.NoError(t, err)
		assert.Equal(t, "p1", doc.ID)
		assert.Equal(t, "Foo", doc.Fields["title"])
		assert.Equal(t, []any{"go"}, doc.Fields["tags"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		s, mock := setupPostgresStore(t)
		mock.ExpectQuery(`SELECT data FROM documents`).
			WithArgs("projects", "nope").
			WillReturnError(pgx.ErrNoRows)

		_, err := s.Get(context.Background(), "projects", "nope")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestPostgresStore_Update(t *testing.T) {
	t.Run("merges into existing row", func(t *testing.T) {
		s, mock := setupPostgresStore(t)
		mock.ExpectExec(`UPDATE documents SET data = data \|\|`).
			WithArgs("messages", "m1", pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, s.Update(context.Background(), "messages", "m1", map[string]any{"read": true}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row is not found", func(t *testing.T) {
		s, mock := setupPostgresStore(t)
		mock.ExpectExec(`UPDATE documents`).
			WithArgs("messages", "ghost", pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := s.Update(context.Background(), "messages", "ghost", map[string]any{"read": true})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestPostgresStore_Delete(t *testing.T) {
	s, mock := setupPostgresStore(t)
	mock.ExpectExec(`DELETE FROM documents`).
		WithArgs("messages", "m1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, s.Delete(context.Background(), "messages", "m1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_List(t *testing.T) {
	t.Run("rows in query order", func(t *testing.T) {
		s, mock := setupPostgresStore(t)
		rows := pgxmock.NewRows([]string{"id", "data"}).
			AddRow("b", []byte(`{"createdAt":"2024-03-02T00:00:00.000Z"}`)).
			AddRow("a", []byte(`{"createdAt":"2024-03-01T00:00:00.000Z"}`))
		mock.ExpectQuery(`SELECT id, data FROM documents`).
			WithArgs("messages", "createdAt").
			WillReturnRows(rows)

		docs, err := s.List(context.Background(), "messages", "createdAt")
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "b", docs[0].ID)
		assert.Equal(t, "a", docs[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		s, mock := setupPostgresStore(t)
		mock.ExpectQuery(`SELECT id, data FROM documents`).
			WithArgs("messages", "createdAt").
			WillReturnError(errors.New("connection reset"))

		_, err := s.List(context.Background(), "messages", "createdAt")
		assert.ErrorContains(t, err, "connection reset")
	})

	t.Run("empty table", func(t *testing.T) {
		s, mock := setupPostgresStore(t)
		mock.ExpectQuery(`SELECT id, data FROM documents`).
			WithArgs("projects", "createdAt").
			WillReturnRows(pgxmock.NewRows([]string{"id", "data"}))

		docs, err := s.List(context.Background(), "projects", "createdAt")
		require.NoError(t, err)
		assert.NotNil(t, docs)
		assert.Empty(t, docs)
	})
}
