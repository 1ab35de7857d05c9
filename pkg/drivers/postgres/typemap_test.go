package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyarchive/wxdb/pkg/storage"
)

func TestTypeMapRoundTrip(t *testing.T) {
	// Every logical type survives DDL generation plus reflection; the
	// integer widths each come back as themselves.
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

func TestTypeMapForward(t *testing.T) {
	tests := []struct {
		logical storage.ColumnType
		native  string
	}{
		{storage.SmallInt, "SMALLINT"},
		{storage.Integer, "INTEGER"},
		{storage.BigInt, "BIGINT"},
		{storage.Real, "DOUBLE PRECISION"},
		{storage.Text, "TEXT"},
		{storage.Blob, "BYTEA"},
		{storage.Bool, "BOOLEAN"},
	}

	for _, tt := range tests {
		native, err := typeMap.NativeFor(tt.logical)
		require.NoError(t, err)
		assert.Equal(t, tt.native, native)
	}
}

func TestTypeMapReverseAliases(t *testing.T) {
	tests := []struct {
		native   string
		expected storage.ColumnType
	}{
		{"int2", storage.SmallInt},
		{"int4", storage.Integer},
		{"int8", storage.BigInt},
		{"real", storage.Real},
		{"float8", storage.Real},
		{"numeric", storage.Real},
		{"character varying", storage.Text},
		{"character varying(80)", storage.Text},
		{"varchar(80)", storage.Text},
		{"bpchar", storage.Text},
		{"bool", storage.Bool},
	}

	for _, tt := range tests {
		t.Run(tt.native, func(t *testing.T) {
			logical, err := typeMap.LogicalFor(tt.native)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, logical)
		})
	}
}

func TestTypeMapUnmappedNative(t *testing.T) {
	for _, native := range []string{"uuid", "jsonb", "timestamp with time zone", "inet"} {
		_, err := typeMap.LogicalFor(native)
		assert.ErrorIs(t, err, storage.ErrUnmappedType, native)
	}
}
