package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func archiveSpec() TableSpec {
	return TableSpec{
		Name: "archive",
		Columns: []ColumnSpec{
			{Name: "dateTime", Type: BigInt},
			{Name: "usUnits", Type: Integer},
			{Name: "interval", Type: Integer},
			{Name: "outTemp", Type: Real, Nullable: true},
			{Name: "barometer", Type: Real, Nullable: true},
		},
		PrimaryKey: []string{"dateTime"},
	}
}

func TestTableSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TableSpec)
		wantErr bool
	}{
		{"valid spec", func(*TableSpec) {}, false},
		{"empty table name", func(s *TableSpec) { s.Name = "" }, true},
		{"no columns", func(s *TableSpec) { s.Columns = nil }, true},
		{"empty column name", func(s *TableSpec) { s.Columns[0].Name = "" }, true},
		{"duplicate column", func(s *TableSpec) { s.Columns[1].Name = "dateTime" }, true},
		{"duplicate column differing in case", func(s *TableSpec) { s.Columns[1].Name = "DATETIME" }, true},
		{"primary key names unknown column", func(s *TableSpec) { s.PrimaryKey = []string{"missing"} }, true},
		{"auto-increment on real column", func(s *TableSpec) { s.Columns[3].AutoIncrement = true }, true},
		{"auto-increment on integer column", func(s *TableSpec) { s.Columns[1].AutoIncrement = true }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := archiveSpec()
			tt.mutate(&spec)
			err := spec.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrProgramming)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTableSpecColumn(t *testing.T) {
	spec := archiveSpec()

	col, ok := spec.Column("outtemp")
	require.True(t, ok)
	assert.Equal(t, "outTemp", col.Name)
	assert.Equal(t, Real, col.Type)

	_, ok = spec.Column("missing")
	assert.False(t, ok)
}

func TestColumnTypeIsInteger(t *testing.T) {
	assert.True(t, SmallInt.IsInteger())
	assert.True(t, Integer.IsInteger())
	assert.True(t, BigInt.IsInteger())
	assert.False(t, Real.IsInteger())
	assert.False(t, Text.IsInteger())
	assert.False(t, Blob.IsInteger())
	assert.False(t, Bool.IsInteger())
}

func TestTypeMapForward(t *testing.T) {
	m := NewTypeMap(
		map[ColumnType]string{Integer: "INTEGER", Real: "DOUBLE PRECISION"},
		nil,
	)

	native, err := m.NativeFor(Integer)
	require.NoError(t, err)
	assert.Equal(t, "INTEGER", native)

	_, err = m.NativeFor(Blob)
	assert.ErrorIs(t, err, ErrUnmappedType)
}

func TestTypeMapReverse(t *testing.T) {
	m := NewTypeMap(
		map[ColumnType]string{Integer: "INTEGER", Real: "DOUBLE PRECISION", Text: "TEXT"},
		map[string]ColumnType{"varchar": Text, "float8": Real},
	)

	tests := []struct {
		native   string
		expected ColumnType
	}{
		{"INTEGER", Integer},          // forward image
		{"integer", Integer},          // case-insensitive
		{"double precision", Real},    // multi-word
		{"varchar", Text},             // alias
		{"VARCHAR(80)", Text},         // length suffix stripped
		{"  varchar (80)  ", Text},    // whitespace tolerated
		{"FLOAT8", Real},              // alias, upper case
	}

	for _, tt := range tests {
		t.Run(tt.native, func(t *testing.T) {
			logical, err := m.LogicalFor(tt.native)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, logical)
		})
	}

	_, err := m.LogicalFor("uuid")
	assert.ErrorIs(t, err, ErrUnmappedType)
}

func TestTypeMapLogicalsCanonicalOrder(t *testing.T) {
	m := NewTypeMap(
		map[ColumnType]string{Bool: "BOOLEAN", SmallInt: "SMALLINT", Text: "TEXT"},
		nil,
	)
	assert.Equal(t, []ColumnType{SmallInt, Text, Bool}, m.Logicals())
}
