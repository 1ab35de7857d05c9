package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/skyarchive/wxdb/pkg/storage"
)

// CreateTable generates and executes CREATE TABLE DDL for the spec,
// preserving column order. A single auto-increment primary-key column
// renders as SQLite's native rowid alias, INTEGER PRIMARY KEY
// AUTOINCREMENT; that form is only valid for a one-column INTEGER key.
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

	rowidAlias := ""
	if len(spec.PrimaryKey) == 1 {
		if col, ok := spec.Column(spec.PrimaryKey[0]); ok && col.AutoIncrement {
			if col.Type != storage.Integer {
				return "", storage.Errorf(storage.ErrProgramming, "create table",
					"auto-increment primary key %q must be INTEGER for sqlite, got %s", col.Name, col.Type)
			}
			rowidAlias = c.Dialect.NormalizeName(col.Name)
		}
	}

	defs := make([]string, 0, len(spec.Columns)+1)
	for _, col := range spec.Columns {
		if c.Dialect.NormalizeName(col.Name) == rowidAlias {
			defs = append(defs, c.Dialect.Ident(col.Name)+" INTEGER PRIMARY KEY AUTOINCREMENT")
			continue
		}
		def, err := c.columnSQL(col)
		if err != nil {
			return "", err
		}
		defs = append(defs, def)
	}
	if len(spec.PrimaryKey) > 0 && rowidAlias == "" {
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
	if !col.Nullable {
		def += " NOT NULL"
	}
	if col.Default != "" {
		def += " DEFAULT " + col.Default
	}
	return def, nil
}

// DropTable drops a table. SQLite keeps no dependent-object bookkeeping
// for plain tables, so cascade changes nothing; an absent table surfaces
// ErrNoSuchTable.
func (c *Conn) DropTable(ctx context.Context, name string, _ bool) error {
	c.Logger.Debug("dropping table", "table", name)
	_, err := c.Exec(ctx, "DROP TABLE "+c.Dialect.Ident(name))
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

// DropColumns removes columns from an existing table.
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
