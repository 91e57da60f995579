package db

import (
	"database/sql"
	"embed"
	"fmt"
	"net/url"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const sqliteDriverName = "sqlite"

// Pragmas applied to every connection through the DSN, so they survive
// connection recycling.
var connPragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
}

// InitDB opens/creates a SQLite DB and applies the embedded migrations.
// Use ":memory:" for a throwaway database. migLog may be nil.
func InitDB(path string, migLog goose.Logger) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is not great with many writers
	db.SetMaxIdleConns(1)

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if err := migrate(db, migLog); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// DSN appends connection pragmas and an immediate transaction lock to path.
// BEGIN IMMEDIATE takes the write lock up front, which is what makes the
// vote toggle check-and-act atomic.
func DSN(path string) string {
	q := url.Values{}
	for _, p := range connPragmas {
		q.Add("_pragma", p)
	}
	q.Set("_txlock", "immediate")

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + q.Encode()
}

func migrate(db *sql.DB, migLog goose.Logger) error {
	if migLog == nil {
		migLog = goose.NopLogger()
	}
	goose.SetLogger(migLog)
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
