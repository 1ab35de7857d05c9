package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyarchive/wxdb/pkg/storage"
)

func newDDLConn() *Conn {
	conn := &Conn{}
	conn.Dialect = Dialect
	return conn
}

func TestCreateTableSQL(t *testing.T) {
	conn := newDDLConn()

	tests := []struct {
		name     string
		spec     storage.TableSpec
		expected string
	}{
		{
			name: "archive table",
			spec: storage.TableSpec{
				Name: "archive",
				Columns: []storage.ColumnSpec{
					{Name: "dateTime", Type: storage.BigInt},
					{Name: "usUnits", Type: storage.Integer},
					{Name: "outTemp", Type: storage.Real, Nullable: true},
				},
				PrimaryKey: []string{"dateTime"},
			},
			expected: `CREATE TABLE archive (datetime BIGINT NOT NULL, usunits INTEGER NOT NULL, outtemp REAL, PRIMARY KEY (datetime))`,
		},
		{
			name: "rowid alias for auto-increment key",
			spec: storage.TableSpec{
				Name: "events",
				Columns: []storage.ColumnSpec{
					{Name: "id", Type: storage.Integer, AutoIncrement: true},
					{Name: "note", Type: storage.Text, Nullable: true},
				},
				PrimaryKey: []string{"id"},
			},
			expected: `CREATE TABLE events (id INTEGER PRIMARY KEY AUTOINCREMENT, note TEXT)`,
		},
		{
			name: "composite key stays a table constraint",
			spec: storage.TableSpec{
				Name: "daily_summary",
				Columns: []storage.ColumnSpec{
					{Name: "dateTime", Type: storage.BigInt},
					{Name: "obs_type", Type: storage.Text},
					{Name: "sum", Type: storage.Real, Nullable: true},
				},
				PrimaryKey: []string{"dateTime", "obs_type"},
			},
			expected: `CREATE TABLE daily_summary (datetime BIGINT NOT NULL, obs_type TEXT NOT NULL, sum REAL, PRIMARY KEY (datetime, obs_type))`,
		},
		{
			name: "reserved word column quoted",
			spec: storage.TableSpec{
				Name: "log",
				Columns: []storage.ColumnSpec{
					{Name: "order", Type: storage.Integer},
				},
			},
			expected: `CREATE TABLE log ("order" INTEGER NOT NULL)`,
		},
		{
			name: "default literal",
			spec: storage.TableSpec{
				Name: "stations",
				Columns: []storage.ColumnSpec{
					{Name: "name", Type: storage.Text},
					{Name: "active", Type: storage.Bool, Default: "1"},
				},
			},
			expected: `CREATE TABLE stations (name TEXT NOT NULL, active BOOLEAN NOT NULL DEFAULT 1)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := conn.createTableSQL(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, stmt)
		})
	}
}

func TestCreateTableSQLRejectsNonIntegerRowidAlias(t *testing.T) {
	conn := newDDLConn()
	_, err := conn.createTableSQL(storage.TableSpec{
		Name: "events",
		Columns: []storage.ColumnSpec{
			{Name: "id", Type: storage.BigInt, AutoIncrement: true},
		},
		PrimaryKey: []string{"id"},
	})
	assert.ErrorIs(t, err, storage.ErrProgramming)
}

func TestKindForMessage(t *testing.T) {
	tests := []struct {
		msg  string
		kind error
	}{
		{"SQL logic error: no such table: ghost (1)", storage.ErrNoSuchTable},
		{"SQL logic error: no such column: ghost (1)", storage.ErrNoSuchColumn},
		{"SQL logic error: table test1 has no column named ghost (1)", storage.ErrNoSuchColumn},
		{"SQL logic error: table test1 already exists (1)", storage.ErrTableExists},
		{`SQL logic error: near "FRM": syntax error (1)`, storage.ErrProgramming},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.ErrorIs(t, kindForMessage(tt.msg), tt.kind)
		})
	}
}

func TestTypeMapRoundTrip(t *testing.T) {
	for _, logical := range storage.ColumnTypes() {
		t.Run(string(logical), func(t *testing.T) {
			native, err := typeMap.NativeFor(logical)
			require.NoError(t, err)
			back, err := typeMap.LogicalFor(native)
			require.NoError(t, err)
			assert.Equal(t, logical, back)
		})
	}
}

func TestTypeMapAliases(t *testing.T) {
	tests := []struct {
		native   string
		expected storage.ColumnType
	}{
		{"int", storage.Integer},
		{"tinyint", storage.SmallInt},
		{"double precision", storage.Real},
		{"VARCHAR(80)", storage.Text},
		{"clob", storage.Text},
		{"bool", storage.Bool},
	}

	for _, tt := range tests {
		logical, err := typeMap.LogicalFor(tt.native)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, logical, tt.native)
	}

	_, err := typeMap.LogicalFor("datetime")
	assert.ErrorIs(t, err, storage.ErrUnmappedType)
}
