package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"

	"github.com/skyarchive/wxdb/pkg/storage"
)

// ReflectTable reconstructs a TableSpec from PRAGMA table_info: column
// names in declaration order, declared types mapped back through the
// reverse type map, nullability, defaults, and the primary-key column
// list. An unrecognized declared type surfaces ErrUnmappedType.
func (c *Conn) ReflectTable(ctx context.Context, table string) (*storage.TableSpec, error) {
	const op = "reflect table"
	name := c.Dialect.NormalizeName(table)

	// PRAGMA arguments cannot be bound parameters.
	rows, err := c.Query(ctx, "PRAGMA table_info("+c.Dialect.Ident(name)+")")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	type pkCol struct {
		pos  int
		name string
	}
	var pk []pkCol
	spec := &storage.TableSpec{Name: name}
	for rows.Next() {
		var (
			cid, notNull, pkPos int
			colName, declared   string
			colDefault          sql.NullString
		)
		if err := rows.Scan(&cid, &colName, &declared, &notNull, &colDefault, &pkPos); err != nil {
			return nil, err
		}
		logical, err := typeMap.LogicalFor(declared)
		if err != nil {
			return nil, storage.Errorf(storage.ErrUnmappedType, op,
				"column %q of table %q has unmapped declared type %q", colName, name, declared)
		}
		col := storage.ColumnSpec{
			Name:     c.Dialect.NormalizeName(colName),
			Type:     logical,
			Nullable: notNull == 0 && pkPos == 0,
		}
		if colDefault.Valid {
			col.Default = colDefault.String
		}
		if pkPos > 0 {
			pk = append(pk, pkCol{pos: pkPos, name: col.Name})
		}
		spec.Columns = append(spec.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(spec.Columns) == 0 {
		return nil, storage.Errorf(storage.ErrNoSuchTable, op, "table %q not found", name)
	}

	sort.Slice(pk, func(i, j int) bool { return pk[i].pos < pk[j].pos })
	for _, p := range pk {
		spec.PrimaryKey = append(spec.PrimaryKey, p.name)
	}

	// AUTOINCREMENT does not appear in table_info; read the declaration.
	if len(spec.PrimaryKey) == 1 {
		auto, err := c.declaresAutoincrement(ctx, name)
		if err != nil {
			return nil, err
		}
		if auto {
			for i := range spec.Columns {
				if spec.Columns[i].Name == spec.PrimaryKey[0] {
					spec.Columns[i].AutoIncrement = true
					spec.Columns[i].Nullable = false
				}
			}
		}
	}
	return spec, nil
}

func (c *Conn) declaresAutoincrement(ctx context.Context, table string) (bool, error) {
	const op = "reflect table"
	var ddl sql.NullString
	err := c.QueryRowScan(ctx, op,
		"SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?",
		[]any{table}, &ddl)
	if err != nil {
		var classified *storage.Error
		if errors.As(err, &classified) && errors.Is(classified.Err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return ddl.Valid && strings.Contains(strings.ToUpper(ddl.String), "AUTOINCREMENT"), nil
}
