// Package sqlstore persists slots in a SQL table. SQLite is the default
// backend for a local installation; Postgres is supported for a shared host.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/zentracker/internal/database"
	"github.com/MrJamesThe3rd/zentracker/internal/kv"
)

const (
	DriverSQLite   = database.DriverSQLite
	DriverPostgres = database.DriverPostgres
)

type Store struct {
	db     *sql.DB
	driver string
}

// New wraps an open database whose schema is already migrated.
func New(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver}
}

// Open migrates the schema, then connects. For SQLite dsn is a file path and
// its directory is created if needed.
func Open(driver, dsn string) (*Store, error) {
	if driver == DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	if err := RunMigrations(driver, dsn); err != nil {
		return nil, fmt.Errorf("migrating slots: %w", err)
	}

	db, err := database.New(driver, dsn)
	if err != nil {
		return nil, err
	}

	return New(db, driver), nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT value FROM slots WHERE name = ?`), key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, kv.ErrNotFound
		}

		return nil, fmt.Errorf("reading slot %s: %w", key, err)
	}

	return value, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO slots (name, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := s.db.ExecContext(ctx, s.rebind(query), key, value); err != nil {
		return fmt.Errorf("writing slot %s: %w", key, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM slots WHERE name = ?`), key); err != nil {
		return fmt.Errorf("deleting slot %s: %w", key, err)
	}

	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to $n for Postgres.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}

	var (
		sb strings.Builder
		n  int
	)

	for _, r := range query {
		if r != '?' {
			sb.WriteRune(r)
			continue
		}

		n++
		sb.WriteString("$" + strconv.Itoa(n))
	}

	return sb.String()
}
