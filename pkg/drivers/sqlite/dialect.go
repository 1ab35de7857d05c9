package sqlite

import (
	"github.com/skyarchive/wxdb/pkg/dialect"
)

// sqliteReservedWords contains the SQLite keywords that need quoting when
// used as identifiers.
var sqliteReservedWords = []string{
	"abort", "action", "add", "after", "all", "alter", "and", "as", "asc",
	"attach", "autoincrement", "before", "begin", "between", "by", "cascade",
	"case", "cast", "check", "collate", "column", "commit", "conflict",
	"constraint", "create", "cross", "current_date", "current_time",
	"current_timestamp", "database", "default", "deferrable", "deferred",
	"delete", "desc", "detach", "distinct", "drop", "each", "else", "end",
	"escape", "except", "exclusive", "exists", "explain", "fail", "for",
	"foreign", "from", "full", "glob", "group", "having", "if", "ignore",
	"immediate", "in", "index", "indexed", "initially", "inner", "insert",
	"instead", "intersect", "into", "is", "isnull", "join", "key", "left",
	"like", "limit", "match", "natural", "no", "not", "notnull", "null",
	"of", "offset", "on", "or", "order", "outer", "plan", "pragma",
	"primary", "query", "raise", "recursive", "references", "regexp",
	"reindex", "release", "rename", "replace", "restrict", "right",
	"rollback", "row", "savepoint", "select", "set", "table", "temp",
	"temporary", "then", "to", "transaction", "trigger", "union", "unique",
	"update", "using", "vacuum", "values", "view", "virtual", "when",
	"where", "with", "without",
}

// Dialect is the SQLite dialect: case-insensitive identifiers folded to
// lowercase for the canonical form, ? placeholders, main default schema.
var Dialect = dialect.NewDialect("sqlite").
	WithNormalization(dialect.NormCaseInsensitive).
	WithDefaultSchema("main").
	WithPlaceholderStyle(dialect.PlaceholderQuestion).
	WithReservedWords(sqliteReservedWords...)

func init() {
	dialect.Register(Dialect)
}
