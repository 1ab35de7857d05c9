package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		norm     NormalizationStrategy
		input    string
		expected string
	}{
		{"lowercase folds", NormLowercase, "WindSpeed", "windspeed"},
		{"lowercase keeps lower", NormLowercase, "outtemp", "outtemp"},
		{"uppercase folds", NormUppercase, "outTemp", "OUTTEMP"},
		{"case insensitive folds to lower", NormCaseInsensitive, "OutTemp", "outtemp"},
		{"case sensitive preserves", NormCaseSensitive, "OutTemp", "OutTemp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDialect("test").WithNormalization(tt.norm)
			assert.Equal(t, tt.expected, d.NormalizeName(tt.input))
		})
	}
}

func TestIdent(t *testing.T) {
	d := NewDialect("test").WithReservedWords("user", "order", "table")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain identifier untouched", "outtemp", "outtemp"},
		{"mixed case folded", "OutTemp", "outtemp"},
		{"reserved word quoted", "user", `"user"`},
		{"reserved word folded then quoted", "ORDER", `"order"`},
		{"space needs quoting", "wind speed", `"wind speed"`},
		{"leading digit needs quoting", "2min_gust", `"2min_gust"`},
		{"underscore is plain", "interval_secs", "interval_secs"},
		{"embedded quote escaped", `we"ird`, `"we""ird"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, d.Ident(tt.input))
		})
	}
}

func TestIsReservedWord(t *testing.T) {
	d := NewDialect("test").WithReservedWords("user", "order")

	assert.True(t, d.IsReservedWord("user"))
	assert.True(t, d.IsReservedWord("USER"))
	assert.False(t, d.IsReservedWord("outtemp"))
}

func TestFormatPlaceholder(t *testing.T) {
	q := NewDialect("q").WithPlaceholderStyle(PlaceholderQuestion)
	dollar := NewDialect("d").WithPlaceholderStyle(PlaceholderDollar)

	assert.Equal(t, "?", q.FormatPlaceholder(1))
	assert.Equal(t, "?", q.FormatPlaceholder(7))
	assert.Equal(t, "$1", dollar.FormatPlaceholder(1))
	assert.Equal(t, "$7", dollar.FormatPlaceholder(7))
}

func TestReplacePlaceholders(t *testing.T) {
	dollar := NewDialect("d").WithPlaceholderStyle(PlaceholderDollar)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"no placeholders",
			"SELECT 1",
			"SELECT 1",
		},
		{
			"numbered in order",
			"INSERT INTO archive VALUES (?, ?, ?)",
			"INSERT INTO archive VALUES ($1, $2, $3)",
		},
		{
			"question mark in string literal untouched",
			"SELECT * FROM archive WHERE note = 'why?' AND dateTime = ?",
			"SELECT * FROM archive WHERE note = 'why?' AND dateTime = $1",
		},
		{
			"question mark in quoted identifier untouched",
			`SELECT "odd?name" FROM archive WHERE id = ?`,
			`SELECT "odd?name" FROM archive WHERE id = $1`,
		},
		{
			"adjacent literals",
			"UPDATE archive SET note = '?', flag = ? WHERE id = ?",
			"UPDATE archive SET note = '?', flag = $1 WHERE id = $2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dollar.ReplacePlaceholders(tt.input))
		})
	}
}

func TestReplacePlaceholdersQuestionStyleIsIdentity(t *testing.T) {
	q := NewDialect("q").WithPlaceholderStyle(PlaceholderQuestion)
	in := "INSERT INTO archive VALUES (?, ?, ?)"
	assert.Equal(t, in, q.ReplacePlaceholders(in))
}

func TestRegistry(t *testing.T) {
	d := NewDialect("testengine").WithDefaultSchema("main")
	Register(d)

	got, ok := Get("testengine")
	require.True(t, ok)
	assert.Same(t, d, got)

	// Lookup is case-insensitive.
	got, ok = Get("TestEngine")
	require.True(t, ok)
	assert.Same(t, d, got)

	_, ok = Get("no-such-dialect")
	assert.False(t, ok)

	assert.Contains(t, List(), "testengine")
}
