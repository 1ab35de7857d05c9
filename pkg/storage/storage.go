// Package storage defines the backend-agnostic storage contract of the
// weather archive: drivers, connections, transactions, table specifications,
// type mapping, and the generic error taxonomy. Concrete engine drivers live
// in pkg/drivers/ and register themselves here; the host application selects
// one purely by configuration and relies on identical semantics from all of
// them.
package storage

import (
	"context"
)

// Driver is implemented once per storage engine. Open returns a live
// connection; the administrative operations manage whole databases and run
// outside any transaction (CREATE/DROP DATABASE cannot be transactional on
// most engines).
type Driver interface {
	// Open establishes a session to the target database. It fails with
	// ErrNoSuchDatabase if the database does not exist and never creates
	// it implicitly.
	Open(ctx context.Context, cfg Config) (Conn, error)

	// CreateDatabase creates the target database, failing with
	// ErrDatabaseExists if it is already present.
	CreateDatabase(ctx context.Context, cfg Config) error

	// DropDatabase removes the target database, failing with
	// ErrNoSuchDatabase if it is absent.
	DropDatabase(ctx context.Context, cfg Config) error

	// DatabaseExists reports whether the target database exists. It is a
	// pure catalog query with no side effects.
	DatabaseExists(ctx context.Context, cfg Config) (bool, error)
}

// Conn is one authenticated session to a database server. A Conn is
// single-threaded in use: at most one unit of work proceeds at a time,
// matching the underlying client protocol. Separate Conns may be used
// concurrently.
type Conn interface {
	// Exec runs a statement that returns no rows. Parameters are always
	// bound positionally with ? placeholders, never interpolated; the
	// driver rewrites them to the engine's native style. Returns the
	// number of affected rows where the engine reports one.
	Exec(ctx context.Context, query string, args ...any) (int64, error)

	// Query runs a statement and returns a forward-only row stream.
	Query(ctx context.Context, query string, args ...any) (*Rows, error)

	// Begin starts a transaction, failing with ErrTxActive if one is
	// already active. Nested transactions are not supported.
	Begin(ctx context.Context) error

	// Commit commits the active transaction. On an idle connection it is
	// a no-op.
	Commit() error

	// Rollback rolls back the active transaction. It is idempotent: on an
	// idle connection it is a no-op returning nil, so cleanup code can
	// call it unconditionally on every exit path.
	Rollback() error

	// Transaction runs fn inside a transaction, committing on success and
	// rolling back on error or panic.
	Transaction(ctx context.Context, fn func(context.Context) error) error

	// InTransaction reports whether a transaction is active.
	InTransaction() bool

	// LastInsertID returns the value generated by the engine's
	// identity/sequence mechanism for the most recent insert, or
	// ErrNotSupported if no value was generated.
	LastInsertID(ctx context.Context) (int64, error)

	// CreateTable generates and executes engine-correct CREATE TABLE DDL
	// for the spec, preserving column order.
	CreateTable(ctx context.Context, spec TableSpec) error

	// DropTable drops a table, cascading to dependent objects only when
	// requested. An absent table surfaces ErrNoSuchTable; dependents
	// blocking a non-cascade drop surface ErrIntegrity.
	DropTable(ctx context.Context, name string, cascade bool) error

	// ReflectTable reconstructs a TableSpec from catalog metadata.
	ReflectTable(ctx context.Context, name string) (*TableSpec, error)

	// Tables lists the user tables in the database.
	Tables(ctx context.Context) ([]string, error)

	// Columns lists a table's column names in declaration order.
	Columns(ctx context.Context, table string) ([]string, error)

	// PrimaryKeyColumns lists a table's primary-key columns in key order.
	PrimaryKeyColumns(ctx context.Context, table string) ([]string, error)

	// AddColumn appends a column to an existing table.
	AddColumn(ctx context.Context, table string, col ColumnSpec) error

	// DropColumns removes columns from an existing table.
	DropColumns(ctx context.Context, table string, names ...string) error

	// ServerVersion reports the engine's version string.
	ServerVersion(ctx context.Context) (string, error)

	// DatabaseName returns the name of the connected database.
	DatabaseName() string

	// Close releases the session. It is idempotent, and rolls back any
	// active transaction before releasing.
	Close() error
}
