package sqlite

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"book_catalog/config"

	"github.com/golang-migrate/migrate/v4"
	migrateSqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

func MustInitSqlite(cfg *config.Config) *sqlx.DB {
	db, err := Open(cfg.Storage.SqlitePath)
	if err != nil {
		slog.Error("Error while opening SQLite", slog.String("path", cfg.Storage.SqlitePath), slog.String("error", err.Error()))
		panic(err)
	}
	slog.Info("SQLite connected", slog.String("path", cfg.Storage.SqlitePath))

	return db
}

// Open opens the database file at path, creating parent directories, and
// brings the schema up to date.
func Open(path string) (*sqlx.DB, error) {
	if path == "" {
		return nil, errors.New("empty sqlite path")
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer; avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	if err = applyPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err = migrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	}

	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("pragma %q: %w", stmt, err)
		}
	}
	return nil
}

func migrateUp(db *sqlx.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrations source: %w", err)
	}

	driver, err := migrateSqlite.WithInstance(db.DB, &migrateSqlite.Config{})
	if err != nil {
		return fmt.Errorf("migrations driver: %w", err)
	}

	// m.Close would close db as well, so the migrator is just dropped.
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}

	return nil
}
