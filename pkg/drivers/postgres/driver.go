// Package postgres implements the wxdb storage contract for PostgreSQL,
// using jackc/pgx through database/sql. Import it with a blank identifier
// to register the driver:
//
//	import _ "github.com/skyarchive/wxdb/pkg/drivers/postgres"
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver "pgx"

	"github.com/skyarchive/wxdb/pkg/storage"
)

const (
	defaultHost          = "localhost"
	defaultPort          = 5432
	defaultMaintenanceDB = "postgres"
)

func init() {
	storage.Register("postgres", func(logger *slog.Logger) storage.Driver {
		return New(logger)
	})
}

// Driver implements storage.Driver for PostgreSQL.
type Driver struct {
	logger *slog.Logger
}

// New creates a PostgreSQL driver. A nil logger discards output.
func New(logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Driver{logger: logger}
}

// Open establishes a session to the target database. The database must
// already exist; a missing one surfaces ErrNoSuchDatabase (SQLSTATE 3D000)
// rather than being created implicitly.
func (d *Driver) Open(ctx context.Context, cfg storage.Config) (storage.Conn, error) {
	const op = "connect"
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	host := cfg.Host
	if host == "" {
		host = defaultHost
	}
	d.logger.Debug("connecting to postgres",
		slog.String("host", host),
		slog.String("database", cfg.Database))

	db, err := openDB(ctx, cfg, cfg.Database)
	if err != nil {
		return nil, translate(op, err)
	}

	conn := &Conn{}
	conn.InitSQLConn(db, cfg, Dialect, translate, d.logger)
	conn.LastIDQuery = "SELECT lastval()"
	conn.VersionQuery = "SHOW server_version"
	return conn, nil
}

// CreateDatabase creates the target database. CREATE DATABASE cannot run
// inside a transaction, so it executes on a short-lived autocommit session
// against the maintenance database.
func (d *Driver) CreateDatabase(ctx context.Context, cfg storage.Config) error {
	const op = "create database"
	name, err := databaseIdent(op, cfg)
	if err != nil {
		return err
	}
	return d.onMaintenanceDB(ctx, op, cfg, func(db *sql.DB) error {
		_, err := db.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE %s", name))
		return err
	})
}

// DropDatabase removes the target database. Like CreateDatabase, it runs
// outside any transaction on the maintenance database.
func (d *Driver) DropDatabase(ctx context.Context, cfg storage.Config) error {
	const op = "drop database"
	name, err := databaseIdent(op, cfg)
	if err != nil {
		return err
	}
	return d.onMaintenanceDB(ctx, op, cfg, func(db *sql.DB) error {
		_, err := db.ExecContext(ctx, fmt.Sprintf("DROP DATABASE %s", name))
		return err
	})
}

// DatabaseExists queries pg_database on the maintenance session. Pure
// catalog read, no side effects, safe with no open transaction.
func (d *Driver) DatabaseExists(ctx context.Context, cfg storage.Config) (bool, error) {
	const op = "database exists"
	name, err := databaseIdent(op, cfg)
	if err != nil {
		return false, err
	}
	var exists bool
	err = d.onMaintenanceDB(ctx, op, cfg, func(db *sql.DB) error {
		var one int
		err := db.QueryRowContext(ctx,
			"SELECT 1 FROM pg_catalog.pg_database WHERE datname = $1", name).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	return exists, err
}

// onMaintenanceDB runs fn on a short-lived session to the maintenance
// database (Options["maintenance_db"], default "postgres").
func (d *Driver) onMaintenanceDB(ctx context.Context, op string, cfg storage.Config, fn func(*sql.DB) error) error {
	maint := cfg.Option("maintenance_db", defaultMaintenanceDB)
	db, err := openDB(ctx, cfg, maint)
	if err != nil {
		return translate(op, err)
	}
	defer func() { _ = db.Close() }()
	if err := fn(db); err != nil {
		return translate(op, err)
	}
	return nil
}

func openDB(ctx context.Context, cfg storage.Config, database string) (*sql.DB, error) {
	db, err := sql.Open("pgx", buildDSN(cfg, database))
	if err != nil {
		return nil, err
	}
	capToSession(db)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// capToSession pins the pool to a single connection. A Conn is one server
// session, so lastval() reads the sequence touched by the insert that
// preceded it instead of a fresh session's empty state.
func capToSession(db *sql.DB) {
	db.SetMaxOpenConns(1)
}

// buildDSN constructs a key=value connection string for the given database.
func buildDSN(cfg storage.Config, database string) string {
	host := cfg.Host
	if host == "" {
		host = defaultHost
	}
	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}
	sslmode := cfg.Option("sslmode", "disable")

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s", host, port, database, sslmode)
	if cfg.User != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.User)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}
	if timeout := cfg.Option("connect_timeout", ""); timeout != "" {
		dsn += fmt.Sprintf(" connect_timeout=%s", timeout)
	}
	return dsn
}

func validateConfig(cfg storage.Config) error {
	if cfg.Database == "" {
		return storage.Errorf(storage.ErrProgramming, "connect", "database name is required")
	}
	return nil
}

// databaseIdent folds and validates the target database name. Database
// names cannot be bound parameters in CREATE/DROP DATABASE, so only plain
// identifiers are accepted before interpolation.
func databaseIdent(op string, cfg storage.Config) (string, error) {
	if cfg.Database == "" {
		return "", storage.Errorf(storage.ErrProgramming, op, "database name is required")
	}
	name := Dialect.NormalizeName(cfg.Database)
	if Dialect.Ident(name) != name {
		return "", storage.Errorf(storage.ErrProgramming, op, "invalid database name %q", cfg.Database)
	}
	return name, nil
}
