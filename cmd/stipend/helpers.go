package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/csc-gandhinagar/stipend-flow/internal/config"
	"github.com/csc-gandhinagar/stipend-flow/internal/model"
	"github.com/csc-gandhinagar/stipend-flow/internal/storage"
)

// openStore opens the session database with proper path expansion.
// The returned cleanup closes the store and must always be called.
func openStore() (*storage.SQLiteStore, func(), error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/stipend/stipend.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	cleanup := func() { _ = store.Close() }
	return store, cleanup, nil
}

// loadSession opens the store and reads the current working set.
func loadSession(ctx context.Context) (*model.Session, *storage.SQLiteStore, func(), error) {
	store, cleanup, err := openStore()
	if err != nil {
		return nil, nil, nil, err
	}

	session, err := store.LoadSession(ctx)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	return session, store, cleanup, nil
}

// saveSession persists the session and surfaces storage failures with context.
func saveSession(ctx context.Context, store *storage.SQLiteStore, session *model.Session) error {
	if err := store.ReplaceSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
