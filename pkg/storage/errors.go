package storage

import (
	"errors"
	"fmt"
)

// The generic error taxonomy. Every failure a driver surfaces is classified
// into exactly one of these kinds before it crosses the package boundary;
// callers match with errors.Is and never import the underlying client
// library's error types.
var (
	// ErrNoSuchDatabase is returned when the target database does not exist.
	ErrNoSuchDatabase = errors.New("database does not exist")

	// ErrDatabaseExists is returned when creating a database that already exists.
	ErrDatabaseExists = errors.New("database already exists")

	// ErrNoSuchTable is returned when a statement references an absent table.
	ErrNoSuchTable = errors.New("table does not exist")

	// ErrTableExists is returned when creating a table that already exists.
	ErrTableExists = errors.New("table already exists")

	// ErrNoSuchColumn is returned when a statement references an absent column.
	ErrNoSuchColumn = errors.New("column does not exist")

	// ErrIntegrity is returned for constraint violations and dependency
	// conflicts (duplicate keys, dependent objects blocking a drop).
	ErrIntegrity = errors.New("integrity constraint violation")

	// ErrOperational is returned for connectivity, timeout, and any other
	// failure the driver cannot classify more precisely.
	ErrOperational = errors.New("operational failure")

	// ErrAccessDenied is returned when the server refuses an operation for
	// lack of privilege.
	ErrAccessDenied = errors.New("permission denied")

	// ErrAuthFailed is returned when the server rejects the credentials.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrProgramming is returned for malformed statements and misuse of the
	// adapter API.
	ErrProgramming = errors.New("programming error")

	// ErrNotSupported is returned when the engine cannot perform the
	// requested operation, e.g. LastInsertID with no generated value.
	ErrNotSupported = errors.New("operation not supported")

	// ErrUnmappedType is returned during reflection for a native column
	// type with no reverse type-mapping entry.
	ErrUnmappedType = errors.New("unmapped column type")

	// ErrTxActive is returned by Begin while a transaction is already
	// active on the connection.
	ErrTxActive = errors.New("transaction already active")

	// ErrClosed is returned when using a closed connection.
	ErrClosed = errors.New("connection is closed")
)

// Error wraps a native driver failure with its classified kind, the adapter
// operation that failed, and the engine error code when one was available.
// errors.Is(err, kind) matches the Kind; errors.As still reaches the native
// cause through Unwrap for callers that need engine detail in logs.
type Error struct {
	Kind error  // one of the taxonomy sentinels above
	Op   string // adapter operation, e.g. "connect", "create table"
	Code string // native engine error code (SQLSTATE, SQLite result code)
	Err  error  // native cause, may be nil for errors raised by the adapter
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s (code %s)", msg, e.Code)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the native cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether the error matches a taxonomy kind.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// NewError builds a classified Error.
func NewError(kind error, op, code string, err error) *Error {
	return &Error{Kind: kind, Op: op, Code: code, Err: err}
}

// Errorf builds a classified Error whose cause is a formatted message
// raised by the adapter itself rather than by the engine.
func Errorf(kind error, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}
