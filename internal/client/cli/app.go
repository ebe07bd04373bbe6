// Package cli implements the interactive ventline terminal client: a REPL
// that drives the auth flow and forwards feature commands to the API.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/ventline/ventline/internal/client/api"
	"github.com/ventline/ventline/internal/client/config"
	"github.com/ventline/ventline/internal/client/repositories/tokens"
	"github.com/ventline/ventline/internal/client/session"
	"github.com/ventline/ventline/internal/client/storage"
	"github.com/ventline/ventline/internal/logging"
)

type App struct {
	config *config.Config
	client api.Client
	store  *session.Store
	log    logging.Logger
	db     *sql.DB

	reader *bufio.Reader
	out    io.Writer

	// View state for the vent feed: last requested sort and page.
	feedSort string
	feedPage int
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	store := session.NewStore(tokens.NewSQLiteRepository(db))
	client := api.NewHTTPClient(cfg.APIBaseURL, store.Token, &http.Client{Timeout: cfg.RequestTimeout})

	app := &App{
		config:   cfg,
		client:   client,
		store:    store,
		log:      log,
		db:       db,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		feedSort: "recent",
		feedPage: 1,
	}

	store.Subscribe(func(s session.Session) {
		if s.Identity != nil {
			app.log.Debug(ctx, "session updated", "user", s.Identity.ID)
		}
	})

	return app, nil
}

// Run restores the persisted session (the prompt is not shown until that
// finishes) and enters the REPL.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.store.Initialize(ctx, a.client); err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}
	if current := a.store.Current(); current.Identity != nil {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", current.Identity.Username)
	}

	a.Root(ctx)
	return nil
}

func (a *App) Close() {
	if err := a.client.Close(); err != nil {
		a.log.Warn(context.Background(), "closing api client", "err", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "closing database", "err", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.Current().Identity != nil
}
