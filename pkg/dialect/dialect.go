// Package dialect describes the SQL surface differences between storage
// engines: identifier quoting and case-folding, placeholder style, and the
// default schema. Concrete dialects are registered from pkg/drivers/*
// packages.
package dialect

import (
	"strconv"
	"strings"
)

// NormalizationStrategy describes how an engine folds unquoted identifiers.
type NormalizationStrategy int

const (
	// NormLowercase folds unquoted identifiers to lowercase (PostgreSQL).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase folds unquoted identifiers to uppercase (Oracle-style).
	NormUppercase
	// NormCaseInsensitive stores identifiers as written but compares
	// case-insensitively (SQLite). Folded to lowercase for canonical form.
	NormCaseInsensitive
	// NormCaseSensitive preserves identifiers exactly.
	NormCaseSensitive
)

// PlaceholderStyle describes how bound parameters appear in statement text.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? placeholders.
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, ... placeholders.
	PlaceholderDollar
)

// Dialect is the static SQL-surface configuration for one engine.
type Dialect struct {
	Name          string
	Quote         string
	QuoteEnd      string
	Escape        string
	Normalization NormalizationStrategy
	DefaultSchema string
	Placeholder   PlaceholderStyle

	reservedWords map[string]struct{}
}

// NewDialect creates a dialect with PostgreSQL-style double-quote
// identifiers and lowercase folding; use the With* methods to adjust.
func NewDialect(name string) *Dialect {
	return &Dialect{
		Name:          name,
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: NormLowercase,
		reservedWords: make(map[string]struct{}),
	}
}

// WithDefaultSchema sets the default schema name.
func (d *Dialect) WithDefaultSchema(schema string) *Dialect {
	d.DefaultSchema = schema
	return d
}

// WithPlaceholderStyle sets how bound parameters are formatted.
func (d *Dialect) WithPlaceholderStyle(style PlaceholderStyle) *Dialect {
	d.Placeholder = style
	return d
}

// WithNormalization sets the identifier case-folding strategy.
func (d *Dialect) WithNormalization(norm NormalizationStrategy) *Dialect {
	d.Normalization = norm
	return d
}

// WithReservedWords registers words that need quoting when used as identifiers.
func (d *Dialect) WithReservedWords(words ...string) *Dialect {
	for _, w := range words {
		d.reservedWords[d.NormalizeName(w)] = struct{}{}
	}
	return d
}

// NormalizeName folds an identifier to the dialect's canonical case.
// Every name the adapter writes into a statement and every name it reads
// back from the catalog passes through this function, so names created
// through the adapter are always retrievable under the same spelling.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Normalization {
	case NormUppercase:
		return strings.ToUpper(name)
	case NormLowercase, NormCaseInsensitive:
		return strings.ToLower(name)
	default:
		return name
	}
}

// IsReservedWord returns true if the word needs quoting as an identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[d.NormalizeName(word)]
	return ok
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, d.QuoteEnd, d.Escape)
	return d.Quote + escaped + d.QuoteEnd
}

// Ident folds an identifier and quotes it only when needed: reserved words
// and names containing characters outside [a-z0-9_] or starting with a digit.
func (d *Dialect) Ident(name string) string {
	folded := d.NormalizeName(name)
	if d.IsReservedWord(folded) || !isPlainIdentifier(folded) {
		return d.QuoteIdentifier(folded)
	}
	return folded
}

// FormatPlaceholder returns the placeholder for a 1-based parameter index.
func (d *Dialect) FormatPlaceholder(index int) string {
	if d.Placeholder == PlaceholderDollar {
		return "$" + strconv.Itoa(index)
	}
	return "?"
}

// ReplacePlaceholders rewrites generic ? placeholders into the dialect's
// native style. Question marks inside single-quoted literals and quoted
// identifiers are left alone. Dialects using ? natively return the input
// unchanged.
func (d *Dialect) ReplacePlaceholders(query string) string {
	if d.Placeholder == PlaceholderQuestion {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inString := false
	inIdent := false
	for _, r := range query {
		switch {
		case r == '\'' && !inIdent:
			inString = !inString
			b.WriteRune(r)
		case r == '"' && !inString:
			inIdent = !inIdent
			b.WriteRune(r)
		case r == '?' && !inString && !inIdent:
			n++
			b.WriteString(d.FormatPlaceholder(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isPlainIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
