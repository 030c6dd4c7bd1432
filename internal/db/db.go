// Package db creates and opens the single-file arda store.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// ErrStoreExists is returned by Create when the target already has content.
var ErrStoreExists = errors.New("store already exists")

// ErrStoreMissing is returned by Open when the target does not exist.
var ErrStoreMissing = errors.New("store does not exist")

// Create makes a new store at path: schema plus the seeded Fields table.
// It refuses a path that already holds a non-empty file.
func Create(ctx context.Context, path string) (*sql.DB, error) {
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		return nil, fmt.Errorf("%w: %s", ErrStoreExists, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	database, err := connect(path)
	if err != nil {
		return nil, err
	}

	if err := Init(ctx, database); err != nil {
		database.Close()
		return nil, err
	}

	return database, nil
}

// Open opens an existing store. It never creates one.
func Open(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrStoreMissing, path)
		}
		return nil, fmt.Errorf("failed to stat store: %w", err)
	}
	return connect(path)
}

// OpenMemory returns an initialized in-memory store.
func OpenMemory(ctx context.Context) (*sql.DB, error) {
	database, err := connect(":memory:")
	if err != nil {
		return nil, err
	}
	if err := Init(ctx, database); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// Init creates every table and seeds the Fields table.
func Init(ctx context.Context, database *sql.DB) error {
	if _, err := database.ExecContext(ctx, GetSchemaSQL()); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := SeedFields(ctx, database); err != nil {
		return err
	}
	return nil
}

func connect(dsn string) (*sql.DB, error) {
	database, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer, and :memory: stores exist per connection.
	database.SetMaxOpenConns(1)

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}
