package sqlite

import (
	"github.com/skyarchive/wxdb/pkg/storage"
)

// typeMap is the fixed mapping between logical column types and SQLite
// declared type names. SQLite stores the declaration verbatim and reports
// it back from PRAGMA table_info, so the forward names round-trip exactly;
// the reverse aliases cover declarations written by other tools.
var typeMap = storage.NewTypeMap(
	map[storage.ColumnType]string{
		storage.SmallInt: "SMALLINT",
		storage.Integer:  "INTEGER",
		storage.BigInt:   "BIGINT",
		storage.Real:     "REAL",
		storage.Text:     "TEXT",
		storage.Blob:     "BLOB",
		storage.Bool:     "BOOLEAN",
	},
	map[string]storage.ColumnType{
		"int":              storage.Integer,
		"tinyint":          storage.SmallInt,
		"mediumint":        storage.Integer,
		"double":           storage.Real,
		"double precision": storage.Real,
		"float":            storage.Real,
		"numeric":          storage.Real,
		"decimal":          storage.Real,
		"varchar":          storage.Text,
		"character":        storage.Text,
		"char":             storage.Text,
		"clob":             storage.Text,
		"bool":             storage.Bool,
	},
)

// TypeMap exposes the driver's type mapping for callers that need to
// translate types without a live connection.
func TypeMap() storage.TypeMap {
	return typeMap
}
