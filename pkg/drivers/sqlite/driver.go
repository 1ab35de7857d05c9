// Package sqlite implements the wxdb storage contract for SQLite, using
// the pure-Go modernc.org/sqlite driver. Databases are single files named
// by Config.Path; matching the server-based drivers, Open never creates
// one implicitly. Import the package with a blank identifier to register
// the driver:
//
//	import _ "github.com/skyarchive/wxdb/pkg/drivers/sqlite"
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // database/sql driver "sqlite"

	"github.com/skyarchive/wxdb/pkg/storage"
)

func init() {
	storage.Register("sqlite", func(logger *slog.Logger) storage.Driver {
		return New(logger)
	})
}

// Driver implements storage.Driver for SQLite.
type Driver struct {
	logger *slog.Logger
}

// New creates a SQLite driver. A nil logger discards output.
func New(logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Driver{logger: logger}
}

// Open establishes a session to the database file, which must already
// exist; a missing file surfaces ErrNoSuchDatabase for parity with the
// server-based drivers.
func (d *Driver) Open(ctx context.Context, cfg storage.Config) (storage.Conn, error) {
	const op = "connect"
	if err := validateConfig(op, cfg); err != nil {
		return nil, err
	}
	if _, err := os.Stat(cfg.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, storage.Errorf(storage.ErrNoSuchDatabase, op, "database file %q does not exist", cfg.Path)
		}
		return nil, storage.NewError(storage.ErrOperational, op, "", err)
	}

	d.logger.Debug("opening sqlite database", slog.String("path", cfg.Path))

	db, err := openDB(ctx, cfg.Path)
	if err != nil {
		return nil, translate(op, err)
	}

	if cfg.Database == "" {
		cfg.Database = databaseName(cfg.Path)
	}
	conn := &Conn{path: cfg.Path}
	conn.InitSQLConn(db, cfg, Dialect, translate, d.logger)
	conn.LastIDQuery = "SELECT last_insert_rowid()"
	conn.VersionQuery = "SELECT sqlite_version()"
	return conn, nil
}

// CreateDatabase creates the database file, failing with ErrDatabaseExists
// when it is already present.
func (d *Driver) CreateDatabase(ctx context.Context, cfg storage.Config) error {
	const op = "create database"
	if err := validateConfig(op, cfg); err != nil {
		return err
	}
	if _, err := os.Stat(cfg.Path); err == nil {
		return storage.Errorf(storage.ErrDatabaseExists, op, "database file %q already exists", cfg.Path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return storage.NewError(storage.ErrOperational, op, "", err)
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return storage.NewError(storage.ErrOperational, op, "", err)
		}
	}

	// Opening and pinging materializes the file.
	db, err := openDB(ctx, cfg.Path)
	if err != nil {
		return translate(op, err)
	}
	defer func() { _ = db.Close() }()
	if _, err := db.ExecContext(ctx, "PRAGMA user_version = 0"); err != nil {
		return translate(op, err)
	}
	return nil
}

// DropDatabase removes the database file, failing with ErrNoSuchDatabase
// when it is absent.
func (d *Driver) DropDatabase(ctx context.Context, cfg storage.Config) error {
	const op = "drop database"
	if err := validateConfig(op, cfg); err != nil {
		return err
	}
	if err := os.Remove(cfg.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.Errorf(storage.ErrNoSuchDatabase, op, "database file %q does not exist", cfg.Path)
		}
		return storage.NewError(storage.ErrOperational, op, "", err)
	}
	return nil
}

// DatabaseExists reports whether the database file exists.
func (d *Driver) DatabaseExists(_ context.Context, cfg storage.Config) (bool, error) {
	const op = "database exists"
	if err := validateConfig(op, cfg); err != nil {
		return false, err
	}
	if _, err := os.Stat(cfg.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, storage.NewError(storage.ErrOperational, op, "", err)
	}
	return true, nil
}

func openDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single pooled connection also keeps
	// last_insert_rowid() on the session that ran the insert.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func validateConfig(op string, cfg storage.Config) error {
	if cfg.Path == "" {
		return storage.Errorf(storage.ErrProgramming, op, "database file path is required")
	}
	return nil
}

func databaseName(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	return base
}
