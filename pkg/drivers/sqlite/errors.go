package sqlite

import (
	"context"
	"database/sql/driver"
	"errors"
	"strconv"
	"strings"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/skyarchive/wxdb/pkg/storage"
)

// resultKinds maps SQLite primary result codes to generic error kinds.
var resultKinds = map[int]error{
	sqlite3.SQLITE_CONSTRAINT: storage.ErrIntegrity,
	sqlite3.SQLITE_BUSY:       storage.ErrOperational,
	sqlite3.SQLITE_LOCKED:     storage.ErrOperational,
	sqlite3.SQLITE_READONLY:   storage.ErrOperational,
	sqlite3.SQLITE_IOERR:      storage.ErrOperational,
	sqlite3.SQLITE_CANTOPEN:   storage.ErrNoSuchDatabase,
	sqlite3.SQLITE_NOTADB:     storage.ErrNoSuchDatabase,
	sqlite3.SQLITE_AUTH:       storage.ErrAccessDenied,
	sqlite3.SQLITE_PERM:       storage.ErrAccessDenied,
	sqlite3.SQLITE_CORRUPT:    storage.ErrOperational,
	sqlite3.SQLITE_FULL:       storage.ErrOperational,
	sqlite3.SQLITE_MISUSE:     storage.ErrProgramming,
	sqlite3.SQLITE_RANGE:      storage.ErrProgramming,
}

// translate classifies a SQLite failure into the generic taxonomy, keyed
// on the result code embedded in the error. SQLITE_ERROR (1) is the one
// exception: the engine reports every schema and syntax problem under that
// single code, so classification falls back to its stable message prefixes.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	var classified *storage.Error
	if errors.As(err, &classified) {
		return err
	}

	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		code := sqErr.Code()
		primary := code & 0xff
		if kind, ok := resultKinds[primary]; ok {
			return storage.NewError(kind, op, strconv.Itoa(code), err)
		}
		if primary == sqlite3.SQLITE_ERROR {
			return storage.NewError(kindForMessage(sqErr.Error()), op, strconv.Itoa(code), err)
		}
		return storage.NewError(storage.ErrOperational, op, strconv.Itoa(code), err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) {
		return storage.NewError(storage.ErrOperational, op, "", err)
	}

	return storage.NewError(storage.ErrOperational, op, "", err)
}

func kindForMessage(msg string) error {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "no such table"):
		return storage.ErrNoSuchTable
	case strings.Contains(msg, "no such column"),
		strings.Contains(msg, "has no column named"):
		return storage.ErrNoSuchColumn
	case strings.Contains(msg, "already exists"):
		return storage.ErrTableExists
	default:
		return storage.ErrProgramming
	}
}
