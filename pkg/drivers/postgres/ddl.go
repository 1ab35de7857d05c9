package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/skyarchive/wxdb/pkg/storage"
)

// CreateTable generates and executes CREATE TABLE DDL for the spec. Column
// order in the statement matches the spec's order exactly; auto-increment
// columns render as native identity columns rather than being emulated.
func (c *Conn) CreateTable(ctx context.Context, spec storage.TableSpec) error {
	stmt, err := c.createTableSQL(spec)
	if err != nil {
		return err
	}
	c.Logger.Debug("creating table", "table", spec.Name, "sql", stmt)
	_, err = c.Exec(ctx, stmt)
	return err
}

func (c *Conn) createTableSQL(spec storage.TableSpec) (string, error) {
	if err := spec.Validate(); err != nil {
		return "", err
	}
	defs := make([]string, 0, len(spec.Columns)+1)
	for _, col := range spec.Columns {
		def, err := c.columnSQL(col)
		if err != nil {
			return "", err
		}
		defs = append(defs, def)
	}
	if len(spec.PrimaryKey) > 0 {
		pk := make([]string, len(spec.PrimaryKey))
		for i, name := range spec.PrimaryKey {
			pk[i] = c.Dialect.Ident(name)
		}
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pk, ", ")))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", c.Dialect.Ident(spec.Name), strings.Join(defs, ", ")), nil
}

func (c *Conn) columnSQL(col storage.ColumnSpec) (string, error) {
	native, err := typeMap.NativeFor(col.Type)
	if err != nil {
		return "", err
	}
	def := c.Dialect.Ident(col.Name) + " " + native
	if col.AutoIncrement {
		def += " GENERATED BY DEFAULT AS IDENTITY"
	}
	if !col.Nullable {
		def += " NOT NULL"
	}
	if col.Default != "" {
		def += " DEFAULT " + col.Default
	}
	return def, nil
}

// DropTable drops a table. Without cascade, dependent objects block the
// drop with an integrity error (SQLSTATE 2BP01); an absent table surfaces
// ErrNoSuchTable.
func (c *Conn) DropTable(ctx context.Context, name string, cascade bool) error {
	stmt := "DROP TABLE " + c.Dialect.Ident(name)
	if cascade {
		stmt += " CASCADE"
	}
	c.Logger.Debug("dropping table", "table", name, "cascade", cascade)
	_, err := c.Exec(ctx, stmt)
	return err
}

// AddColumn appends a column to an existing table.
func (c *Conn) AddColumn(ctx context.Context, table string, col storage.ColumnSpec) error {
	def, err := c.columnSQL(col)
	if err != nil {
		return err
	}
	_, err = c.Exec(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", c.Dialect.Ident(table), def))
	return err
}

// DropColumns removes columns from an existing table, one statement per
// column so a failure identifies the offending name.
func (c *Conn) DropColumns(ctx context.Context, table string, names ...string) error {
	for _, name := range names {
		stmt := fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s",
			c.Dialect.Ident(table), c.Dialect.Ident(name))
		if _, err := c.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
