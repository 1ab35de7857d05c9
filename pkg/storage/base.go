package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/skyarchive/wxdb/pkg/dialect"
)

// TranslateFunc classifies a native driver error into the generic taxonomy.
// Implementations key on the engine's embedded error code, never on message
// text.
type TranslateFunc func(op string, err error) error

// SQLConn implements the engine-neutral parts of Conn over database/sql:
// statement execution, placeholder rewriting, and the transaction state
// machine. Driver packages embed it and add the engine-specific DDL,
// reflection, and administrative operations.
//
// A SQLConn is single-threaded in use, like the Conn contract it serves;
// it holds no lock of its own.
type SQLConn struct {
	DB        *sql.DB
	Dialect   *dialect.Dialect
	Translate TranslateFunc
	Logger    *slog.Logger
	Database  string

	// LastIDQuery is the engine's statement for reading the most recent
	// identity/sequence value, e.g. "SELECT lastval()". Empty means the
	// engine offers none.
	LastIDQuery string
	// VersionQuery is the engine's statement for reading its version.
	VersionQuery string

	explicitTx bool
	tx         *sql.Tx
	closed     bool
}

// InitSQLConn wires the embedded base. Drivers call this once from Open.
func (c *SQLConn) InitSQLConn(db *sql.DB, cfg Config, d *dialect.Dialect, translate TranslateFunc, logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c.DB = db
	c.Dialect = d
	c.Translate = translate
	c.Logger = logger
	c.Database = cfg.Database
	c.explicitTx = cfg.ExplicitTransactions
}

// DatabaseName returns the name of the connected database.
func (c *SQLConn) DatabaseName() string {
	return c.Database
}

// InTransaction reports whether a transaction is active.
func (c *SQLConn) InTransaction() bool {
	return c.tx != nil
}

// executer returns the active transaction when one exists, otherwise the
// plain connection.
func (c *SQLConn) executer() interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
} {
	if c.tx != nil {
		return c.tx
	}
	return c.DB
}

// ensureTx opens the implicit transaction in explicit-transactions mode.
func (c *SQLConn) ensureTx(ctx context.Context, op string) error {
	if !c.explicitTx || c.tx != nil {
		return nil
	}
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.Translate(op, err)
	}
	c.tx = tx
	return nil
}

func (c *SQLConn) checkOpen(op string) error {
	if c.closed {
		return Errorf(ErrClosed, op, "connection already closed")
	}
	return nil
}

// Exec runs a statement that returns no rows. Generic ? placeholders are
// rewritten to the dialect's native style; parameters are always bound,
// never interpolated.
func (c *SQLConn) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	const op = "execute"
	if err := c.checkOpen(op); err != nil {
		return 0, err
	}
	if err := c.ensureTx(ctx, op); err != nil {
		return 0, err
	}
	res, err := c.executer().ExecContext(ctx, c.Dialect.ReplacePlaceholders(query), args...)
	if err != nil {
		return 0, c.Translate(op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		// Engines without affected-row bookkeeping still succeed.
		return 0, nil
	}
	return affected, nil
}

// Query runs a statement and returns the generic row facade.
func (c *SQLConn) Query(ctx context.Context, query string, args ...any) (*Rows, error) {
	const op = "query"
	if err := c.checkOpen(op); err != nil {
		return nil, err
	}
	if err := c.ensureTx(ctx, op); err != nil {
		return nil, err
	}
	rows, err := c.executer().QueryContext(ctx, c.Dialect.ReplacePlaceholders(query), args...)
	if err != nil {
		return nil, c.Translate(op, err)
	}
	return NewRows(rows, op, c.Translate), nil
}

// QueryRowScan runs a single-row query and scans it into dest, translating
// failures. Used by drivers for catalog lookups.
func (c *SQLConn) QueryRowScan(ctx context.Context, op, query string, args []any, dest ...any) error {
	if err := c.checkOpen(op); err != nil {
		return err
	}
	row := c.executer().QueryRowContext(ctx, c.Dialect.ReplacePlaceholders(query), args...)
	if err := row.Scan(dest...); err != nil {
		return c.Translate(op, err)
	}
	return nil
}

// Begin starts a transaction: idle -> active. A second Begin while active
// fails with ErrTxActive; a new unit of work on the same connection must
// wait for the current one to end.
func (c *SQLConn) Begin(ctx context.Context) error {
	const op = "begin"
	if err := c.checkOpen(op); err != nil {
		return err
	}
	if c.tx != nil {
		return Errorf(ErrTxActive, op, "transaction already active on this connection")
	}
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.Translate(op, err)
	}
	c.tx = tx
	return nil
}

// Commit commits the active transaction: active -> idle. On an idle
// connection it is a no-op, matching autocommit semantics.
func (c *SQLConn) Commit() error {
	const op = "commit"
	if err := c.checkOpen(op); err != nil {
		return err
	}
	if c.tx == nil {
		return nil
	}
	tx := c.tx
	c.tx = nil
	if err := tx.Commit(); err != nil {
		return c.Translate(op, err)
	}
	return nil
}

// Rollback rolls back the active transaction: active -> idle. It is
// idempotent; on an idle connection it is a no-op returning nil so cleanup
// code can call it unconditionally on every exit path.
func (c *SQLConn) Rollback() error {
	const op = "rollback"
	if c.closed || c.tx == nil {
		return nil
	}
	tx := c.tx
	c.tx = nil
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return c.Translate(op, err)
	}
	return nil
}

// Transaction runs fn inside a transaction. The rollback is guaranteed on
// every exit path, including panics; commit happens only when fn returns
// nil.
func (c *SQLConn) Transaction(ctx context.Context, fn func(context.Context) error) error {
	if err := c.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = c.Rollback() }()
	if err := fn(ctx); err != nil {
		return err
	}
	return c.Commit()
}

// LastInsertID returns the engine's most recent identity/sequence value.
func (c *SQLConn) LastInsertID(ctx context.Context) (int64, error) {
	const op = "last insert id"
	if c.LastIDQuery == "" {
		return 0, Errorf(ErrNotSupported, op, "engine reports no generated values")
	}
	var id int64
	if err := c.QueryRowScan(ctx, op, c.LastIDQuery, nil, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// ServerVersion reports the engine's version string.
func (c *SQLConn) ServerVersion(ctx context.Context) (string, error) {
	const op = "server version"
	var version string
	if err := c.QueryRowScan(ctx, op, c.VersionQuery, nil, &version); err != nil {
		return "", err
	}
	return version, nil
}

// Close releases the session. Closing twice is not an error. An active
// transaction is rolled back first; nothing uncommitted survives a close.
func (c *SQLConn) Close() error {
	if c.closed {
		return nil
	}
	if c.tx != nil {
		c.Logger.Debug("rolling back active transaction on close", slog.String("database", c.Database))
		if err := c.Rollback(); err != nil {
			c.Logger.Debug("rollback on close failed", slog.String("error", err.Error()))
		}
	}
	c.closed = true
	if err := c.DB.Close(); err != nil {
		return c.Translate("close", err)
	}
	return nil
}
