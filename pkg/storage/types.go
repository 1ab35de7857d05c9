package storage

import (
	"strings"
)

// ColumnType is an engine-neutral logical column type. Integer widths are
// distinct logical types so that schemas round-trip through reflection
// without losing precision; the host application stores timestamps as epoch
// integers, so no timestamp type exists.
type ColumnType string

const (
	SmallInt ColumnType = "SMALLINT"
	Integer  ColumnType = "INTEGER"
	BigInt   ColumnType = "BIGINT"
	Real     ColumnType = "REAL"
	Text     ColumnType = "TEXT"
	Blob     ColumnType = "BLOB"
	Bool     ColumnType = "BOOL"
)

// ColumnTypes lists every logical type, in a stable order.
func ColumnTypes() []ColumnType {
	return []ColumnType{SmallInt, Integer, BigInt, Real, Text, Blob, Bool}
}

// IsInteger reports whether the type is one of the integer widths.
func (t ColumnType) IsInteger() bool {
	return t == SmallInt || t == Integer || t == BigInt
}

// ColumnSpec describes one column of an engine-neutral table specification.
type ColumnSpec struct {
	Name     string
	Type     ColumnType
	Nullable bool
	// Default is a raw SQL literal rendered verbatim into DDL, e.g. "0" or
	// "'n/a'". Empty means no default.
	Default string
	// AutoIncrement marks an integer column as populated by the engine's
	// identity/sequence mechanism.
	AutoIncrement bool
}

// TableSpec is the canonical engine-neutral description of a table: an
// ordered column list plus an optional primary-key column list. Column
// order is significant; generated DDL and reflected specs preserve it.
type TableSpec struct {
	Name       string
	Columns    []ColumnSpec
	PrimaryKey []string
}

// Column returns the named column spec, matched case-insensitively.
func (s *TableSpec) Column(name string) (ColumnSpec, bool) {
	for _, c := range s.Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// Validate checks the spec for structural problems before any DDL is
// generated: empty or duplicate names, primary-key references to unknown
// columns, and auto-increment on non-integer columns.
func (s *TableSpec) Validate() error {
	if s.Name == "" {
		return Errorf(ErrProgramming, "validate table spec", "table name is empty")
	}
	if len(s.Columns) == 0 {
		return Errorf(ErrProgramming, "validate table spec", "table %q has no columns", s.Name)
	}
	seen := make(map[string]struct{}, len(s.Columns))
	for _, c := range s.Columns {
		if c.Name == "" {
			return Errorf(ErrProgramming, "validate table spec", "table %q has a column with an empty name", s.Name)
		}
		key := strings.ToLower(c.Name)
		if _, dup := seen[key]; dup {
			return Errorf(ErrProgramming, "validate table spec", "duplicate column %q in table %q", c.Name, s.Name)
		}
		seen[key] = struct{}{}
		if c.AutoIncrement && !c.Type.IsInteger() {
			return Errorf(ErrProgramming, "validate table spec", "auto-increment column %q must be an integer type, got %s", c.Name, c.Type)
		}
	}
	for _, pk := range s.PrimaryKey {
		if _, ok := seen[strings.ToLower(pk)]; !ok {
			return Errorf(ErrProgramming, "validate table spec", "primary key column %q not present in table %q", pk, s.Name)
		}
	}
	return nil
}

// TypeMap is a fixed bidirectional mapping between logical column types and
// one engine's native type names. The forward direction is a function: each
// logical type has exactly one native rendering. The reverse direction is
// many-to-one: several native names may collapse onto one logical type,
// chosen deterministically by full enumeration rather than computed ad hoc.
type TypeMap struct {
	forward map[ColumnType]string
	reverse map[string]ColumnType
}

// NewTypeMap builds a TypeMap from the forward mapping plus extra reverse
// aliases. The reverse image of every forward entry is included
// automatically; aliases add the native spellings that only appear during
// reflection.
func NewTypeMap(forward map[ColumnType]string, aliases map[string]ColumnType) TypeMap {
	reverse := make(map[string]ColumnType, len(forward)+len(aliases))
	for logical, native := range forward {
		reverse[strings.ToLower(native)] = logical
	}
	for native, logical := range aliases {
		reverse[strings.ToLower(native)] = logical
	}
	return TypeMap{forward: forward, reverse: reverse}
}

// NativeFor returns the engine-native type name for a logical type.
func (m TypeMap) NativeFor(logical ColumnType) (string, error) {
	native, ok := m.forward[logical]
	if !ok {
		return "", Errorf(ErrUnmappedType, "map type", "no native type for logical type %q", logical)
	}
	return native, nil
}

// LogicalFor returns the logical type for an engine-native type name, as
// reported by the engine's catalog. The lookup is case-insensitive and
// ignores any length/precision suffix, e.g. VARCHAR(80).
func (m TypeMap) LogicalFor(native string) (ColumnType, error) {
	key := strings.ToLower(strings.TrimSpace(native))
	if i := strings.IndexByte(key, '('); i >= 0 {
		key = strings.TrimSpace(key[:i])
	}
	logical, ok := m.reverse[key]
	if !ok {
		return "", Errorf(ErrUnmappedType, "map type", "no logical type for native type %q", native)
	}
	return logical, nil
}

// Logicals returns the logical types the forward mapping covers, in the
// canonical ColumnTypes order.
func (m TypeMap) Logicals() []ColumnType {
	out := make([]ColumnType, 0, len(m.forward))
	for _, t := range ColumnTypes() {
		if _, ok := m.forward[t]; ok {
			out = append(out, t)
		}
	}
	return out
}
