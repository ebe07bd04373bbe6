package tokens

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:tokensrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE credentials (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestSetGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))

	got, err := repo.Get(ctx, "session_token")
	require.NoError(t, err)
	require.Equal(t, "", got, "missing key reads as empty")

	require.NoError(t, repo.Set(ctx, "session_token", "abc"))
	got, err = repo.Get(ctx, "session_token")
	require.NoError(t, err)
	require.Equal(t, "abc", got)

	// Upsert replaces.
	require.NoError(t, repo.Set(ctx, "session_token", "def"))
	got, err = repo.Get(ctx, "session_token")
	require.NoError(t, err)
	require.Equal(t, "def", got)

	require.NoError(t, repo.Delete(ctx, "session_token"))
	got, err = repo.Get(ctx, "session_token")
	require.NoError(t, err)
	require.Equal(t, "", got)
}

func TestDeleteMissingKeyIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(setupDB(t))
	require.NoError(t, repo.Delete(ctx, "never-set"))
}
