package postgres

import (
	"github.com/skyarchive/wxdb/pkg/storage"
)

// typeMap is the fixed mapping between logical column types and PostgreSQL
// native type names. The forward direction renders DDL; the reverse
// direction additionally enumerates every spelling information_schema may
// report, collapsed deterministically (all float/numeric widths read back
// as REAL, all character types as TEXT). A native type absent from the
// reverse map surfaces ErrUnmappedType during reflection.
var typeMap = storage.NewTypeMap(
	map[storage.ColumnType]string{
		storage.SmallInt: "SMALLINT",
		storage.Integer:  "INTEGER",
		storage.BigInt:   "BIGINT",
		storage.Real:     "DOUBLE PRECISION",
		storage.Text:     "TEXT",
		storage.Blob:     "BYTEA",
		storage.Bool:     "BOOLEAN",
	},
	map[string]storage.ColumnType{
		"int2":              storage.SmallInt,
		"int":               storage.Integer,
		"int4":              storage.Integer,
		"int8":              storage.BigInt,
		"real":              storage.Real,
		"float4":            storage.Real,
		"float8":            storage.Real,
		"numeric":           storage.Real,
		"decimal":           storage.Real,
		"character varying": storage.Text,
		"varchar":           storage.Text,
		"character":         storage.Text,
		"char":              storage.Text,
		"bpchar":            storage.Text,
		"bool":              storage.Bool,
	},
)

// TypeMap exposes the driver's type mapping for callers that need to
// translate types without a live connection.
func TypeMap() storage.TypeMap {
	return typeMap
}
