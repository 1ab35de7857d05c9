package postgres

import (
	"context"
	"database/sql/driver"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/skyarchive/wxdb/pkg/storage"
)

// sqlstateKinds maps exact SQLSTATE codes to generic error kinds. The map
// is keyed on the code the server embeds in every error, never on message
// text, so it survives client-library and locale changes.
var sqlstateKinds = map[string]error{
	"42P04": storage.ErrDatabaseExists, // duplicate_database
	"3D000": storage.ErrNoSuchDatabase, // invalid_catalog_name
	"42P01": storage.ErrNoSuchTable,    // undefined_table
	"42P07": storage.ErrTableExists,    // duplicate_table
	"42703": storage.ErrNoSuchColumn,   // undefined_column
	"42501": storage.ErrAccessDenied,   // insufficient_privilege
	"42601": storage.ErrProgramming,    // syntax_error
	"28P01": storage.ErrAuthFailed,     // invalid_password
	"28000": storage.ErrAuthFailed,     // invalid_authorization_specification
	"23505": storage.ErrIntegrity,      // unique_violation
	"2BP01": storage.ErrIntegrity,      // dependent_objects_still_exist
	"08001": storage.ErrOperational,    // sqlclient_unable_to_establish_sqlconnection
	"08003": storage.ErrOperational,    // connection_does_not_exist
	"08006": storage.ErrOperational,    // connection_failure
	"57014": storage.ErrOperational,    // query_canceled
	"55006": storage.ErrOperational,    // object_in_use
	"55000": storage.ErrNotSupported,   // object_not_in_prerequisite_state (lastval before any insert)
}

// classKinds maps SQLSTATE classes (first two characters) for codes without
// an exact entry.
var classKinds = map[string]error{
	"08": storage.ErrOperational, // connection exceptions
	"23": storage.ErrIntegrity,   // integrity constraint violations
	"28": storage.ErrAuthFailed,  // invalid authorization
	"2B": storage.ErrIntegrity,   // dependent privilege descriptors
	"3D": storage.ErrNoSuchDatabase,
	"42": storage.ErrProgramming, // syntax error or access rule violation
	"53": storage.ErrOperational, // insufficient resources
	"57": storage.ErrOperational, // operator intervention
	"58": storage.ErrOperational, // system error
}

// translate classifies a pgx failure into the generic taxonomy. Anything
// unrecognized becomes an operational failure rather than leaking the
// native error type.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	var classified *storage.Error
	if errors.As(err, &classified) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return storage.NewError(kindForSQLState(pgErr.Code), op, pgErr.Code, err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) {
		return storage.NewError(storage.ErrOperational, op, "", err)
	}

	// Network failures and anything else pgx raises without a SQLSTATE.
	return storage.NewError(storage.ErrOperational, op, "", err)
}

func kindForSQLState(code string) error {
	if kind, ok := sqlstateKinds[code]; ok {
		return kind
	}
	if len(code) >= 2 {
		if kind, ok := classKinds[code[:2]]; ok {
			return kind
		}
	}
	return storage.ErrOperational
}
