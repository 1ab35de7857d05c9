package sqlite

import (
	"context"

	"github.com/skyarchive/wxdb/pkg/storage"
)

// Conn is a SQLite session over one database file.
type Conn struct {
	storage.SQLConn
	path string
}

var _ storage.Conn = (*Conn)(nil)

// Path returns the database file backing this connection.
func (c *Conn) Path() string {
	return c.path
}

// Tables lists the user tables, excluding SQLite's internal bookkeeping
// tables.
func (c *Conn) Tables(ctx context.Context) ([]string, error) {
	rows, err := c.Query(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
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

// PrimaryKeyColumns lists a table's primary-key columns in key order.
func (c *Conn) PrimaryKeyColumns(ctx context.Context, table string) ([]string, error) {
	spec, err := c.ReflectTable(ctx, table)
	if err != nil {
		return nil, err
	}
	return spec.PrimaryKey, nil
}
