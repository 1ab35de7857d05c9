package postgres

import (
	"context"

	"github.com/skyarchive/wxdb/pkg/storage"
)

// Conn is a PostgreSQL session. The transaction state machine, statement
// execution, and placeholder rewriting come from the embedded base; this
// type adds the catalog and DDL operations.
type Conn struct {
	storage.SQLConn
}

var _ storage.Conn = (*Conn)(nil)

// Tables lists the user tables in the database, excluding the system
// schemas.
func (c *Conn) Tables(ctx context.Context) ([]string, error) {
	const op = "list tables"
	rows, err := c.Query(ctx, `
		SELECT tablename
		FROM pg_catalog.pg_tables
		WHERE schemaname NOT IN ('pg_catalog', 'information_schema')
		ORDER BY tablename`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, c.Dialect.NormalizeName(name))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tables, nil
}

// Columns lists a table's column names in declaration order.
func (c *Conn) Columns(ctx context.Context, table string) ([]string, error) {
	spec, err := c.ReflectTable(ctx, table)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(spec.Columns))
	for i, col := range spec.Columns {
		names[i] = col.Name
	}
	return names, nil
}

// PrimaryKeyColumns lists a table's primary-key columns in key order, via
// pg_index. An empty result for an existing table means no primary key.
func (c *Conn) PrimaryKeyColumns(ctx context.Context, table string) ([]string, error) {
	name := c.Dialect.NormalizeName(table)
	rows, err := c.Query(ctx, `
		SELECT a.attname
		FROM pg_index i
		JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = ANY(i.indkey)
		JOIN pg_class c ON c.oid = i.indrelid
		WHERE i.indisprimary AND c.relname = ?
		ORDER BY array_position(i.indkey, a.attnum)`, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var cols []string
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return nil, err
		}
		cols = append(cols, c.Dialect.NormalizeName(col))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cols, nil
}
