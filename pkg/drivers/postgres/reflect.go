package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/skyarchive/wxdb/pkg/storage"
)

// ReflectTable reconstructs a TableSpec from catalog metadata: column names
// in declaration order from information_schema, each native type mapped
// back through the reverse type map, nullability, defaults, identity
// columns, and the primary-key column list. An unrecognized native type
// surfaces ErrUnmappedType rather than a silent guess.
func (c *Conn) ReflectTable(ctx context.Context, table string) (*storage.TableSpec, error) {
	const op = "reflect table"
	name := c.Dialect.NormalizeName(table)

	rows, err := c.Query(ctx, `
		SELECT column_name, data_type, is_nullable, column_default, is_identity
		FROM information_schema.columns
		WHERE table_name = ? AND table_schema = current_schema()
		ORDER BY ordinal_position`, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	spec := &storage.TableSpec{Name: name}
	for rows.Next() {
		var (
			colName, dataType, nullable, identity string
			colDefault                            sql.NullString
		)
		if err := rows.Scan(&colName, &dataType, &nullable, &colDefault, &identity); err != nil {
			return nil, err
		}
		logical, err := typeMap.LogicalFor(dataType)
		if err != nil {
			return nil, storage.Errorf(storage.ErrUnmappedType, op,
				"column %q of table %q has unmapped native type %q", colName, name, dataType)
		}
		col := storage.ColumnSpec{
			Name:     c.Dialect.NormalizeName(colName),
			Type:     logical,
			Nullable: strings.EqualFold(nullable, "YES"),
		}
		switch {
		case strings.EqualFold(identity, "YES"):
			col.AutoIncrement = true
		case colDefault.Valid && strings.HasPrefix(colDefault.String, "nextval("):
			// Legacy serial columns surface as a sequence default.
			col.AutoIncrement = true
		case colDefault.Valid:
			col.Default = colDefault.String
		}
		spec.Columns = append(spec.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(spec.Columns) == 0 {
		return nil, storage.Errorf(storage.ErrNoSuchTable, op, "table %q not found", name)
	}

	pk, err := c.PrimaryKeyColumns(ctx, name)
	if err != nil {
		return nil, err
	}
	spec.PrimaryKey = pk
	return spec, nil
}
