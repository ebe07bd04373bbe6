package session

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ventline/ventline/internal/client/models"
	"github.com/ventline/ventline/internal/client/repositories/tokens"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:sessionstore?mode=memory&cache=shared")
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

func newTestStore(t *testing.T) (*Store, tokens.Repository) {
	t.Helper()
	repo := tokens.NewSQLiteRepository(setupDB(t))
	return NewStore(repo), repo
}

// fakeVerifier implements Verifier.
type fakeVerifier struct {
	User  *models.User
	Err   error
	Calls int
}

func (f *fakeVerifier) CurrentUser(ctx context.Context) (*models.User, error) {
	f.Calls++
	return f.User, f.Err
}

// ---- TESTS ----

func TestNewStore_StartsLoading(t *testing.T) {
	store, _ := newTestStore(t)
	current := store.Current()
	require.True(t, current.IsLoading)
	require.Nil(t, current.Identity)
}

func TestLogin_PersistsTokenAndIdentity(t *testing.T) {
	ctx := context.Background()
	store, repo := newTestStore(t)

	user := &models.User{ID: "u1", Username: "x"}
	require.NoError(t, store.Login(ctx, "abc", user))

	current := store.Current()
	require.False(t, current.IsLoading)
	require.Equal(t, user, current.Identity)
	require.Equal(t, "abc", store.Token())

	persisted, err := repo.Get(ctx, TokenKey)
	require.NoError(t, err)
	require.Equal(t, "abc", persisted)
}

func TestLogin_Idempotent(t *testing.T) {
	ctx := context.Background()
	store, repo := newTestStore(t)

	user := &models.User{ID: "u1", Username: "x"}
	require.NoError(t, store.Login(ctx, "abc", user))
	before := store.Current()

	require.NoError(t, store.Login(ctx, "abc", user))
	after := store.Current()

	require.Equal(t, before, after)
	persisted, err := repo.Get(ctx, TokenKey)
	require.NoError(t, err)
	require.Equal(t, "abc", persisted)
}

func TestLogin_RefreshedIdentitySameToken(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	require.NoError(t, store.Login(ctx, "abc", &models.User{ID: "u1", Username: "old"}))
	require.NoError(t, store.Login(ctx, "abc", &models.User{ID: "u1", Username: "new"}))

	require.Equal(t, "new", store.Current().Identity.Username)
	require.Equal(t, "abc", store.Token())
}

func TestLogout_ClearsEverything(t *testing.T) {
	ctx := context.Background()
	store, repo := newTestStore(t)

	require.NoError(t, store.Login(ctx, "abc", &models.User{ID: "u1"}))
	require.NoError(t, store.Logout(ctx))

	require.Nil(t, store.Current().Identity)
	require.Equal(t, "", store.Token())

	persisted, err := repo.Get(ctx, TokenKey)
	require.NoError(t, err)
	require.Equal(t, "", persisted)
}

func TestInitialize_NoToken(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	verifier := &fakeVerifier{}

	require.NoError(t, store.Initialize(ctx, verifier))

	current := store.Current()
	require.False(t, current.IsLoading)
	require.Nil(t, current.Identity)
	require.Zero(t, verifier.Calls, "no token, no verification call")
}

func TestInitialize_ValidToken(t *testing.T) {
	ctx := context.Background()
	store, repo := newTestStore(t)
	require.NoError(t, repo.Set(ctx, TokenKey, "abc"))

	verifier := &fakeVerifier{User: &models.User{ID: "u1", Username: "x"}}
	require.NoError(t, store.Initialize(ctx, verifier))

	current := store.Current()
	require.False(t, current.IsLoading)
	require.Equal(t, "u1", current.Identity.ID)
	require.Equal(t, "abc", store.Token())
}

func TestInitialize_RejectedTokenFailsClosed(t *testing.T) {
	ctx := context.Background()
	store, repo := newTestStore(t)
	require.NoError(t, repo.Set(ctx, TokenKey, "expired"))

	verifier := &fakeVerifier{Err: errors.New("401")}
	require.NoError(t, store.Initialize(ctx, verifier))

	current := store.Current()
	require.False(t, current.IsLoading)
	require.Nil(t, current.Identity)
	require.Equal(t, "", store.Token())

	persisted, err := repo.Get(ctx, TokenKey)
	require.NoError(t, err)
	require.Equal(t, "", persisted, "rejected token is removed from storage")
}

func TestInitialize_TokenVisibleDuringVerification(t *testing.T) {
	ctx := context.Background()
	store, repo := newTestStore(t)
	require.NoError(t, repo.Set(ctx, TokenKey, "abc"))

	var seenDuring string
	verifier := &fakeVerifier{User: &models.User{ID: "u1"}}
	// The adapter would read the token mid-call; emulate by wrapping.
	wrapped := verifierFunc(func(c context.Context) (*models.User, error) {
		seenDuring = store.Token()
		return verifier.CurrentUser(c)
	})

	require.NoError(t, store.Initialize(ctx, wrapped))
	require.Equal(t, "abc", seenDuring)
}

type verifierFunc func(ctx context.Context) (*models.User, error)

func (f verifierFunc) CurrentUser(ctx context.Context) (*models.User, error) { return f(ctx) }

func TestSubscribe_NotifiedOnChange(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	var snapshots []Session
	store.Subscribe(func(s Session) { snapshots = append(snapshots, s) })

	require.NoError(t, store.Login(ctx, "abc", &models.User{ID: "u1"}))
	require.NoError(t, store.Logout(ctx))

	require.Len(t, snapshots, 2)
	require.NotNil(t, snapshots[0].Identity)
	require.Nil(t, snapshots[1].Identity)
}
