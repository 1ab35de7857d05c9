package storage

import (
	"database/sql"
)

// Rows is a forward-only, non-restartable row stream. Consuming it exhausts
// the underlying buffer; it cannot be rewound. Every failure is funneled
// through the owning driver's error translator.
type Rows struct {
	rows      *sql.Rows
	translate TranslateFunc
	op        string
}

// NewRows wraps a sql.Rows in the generic facade. Driver packages call this
// from their Query implementations.
func NewRows(rows *sql.Rows, op string, translate TranslateFunc) *Rows {
	return &Rows{rows: rows, translate: translate, op: op}
}

// Next advances to the next row. It returns false at exhaustion or on
// error; check Err afterwards.
func (r *Rows) Next() bool {
	return r.rows.Next()
}

// Scan copies the current row's values into dest.
func (r *Rows) Scan(dest ...any) error {
	if err := r.rows.Scan(dest...); err != nil {
		return r.translate(r.op, err)
	}
	return nil
}

// Err returns the error, if any, that ended iteration.
func (r *Rows) Err() error {
	if err := r.rows.Err(); err != nil {
		return r.translate(r.op, err)
	}
	return nil
}

// Close releases the row stream. Safe to call more than once.
func (r *Rows) Close() error {
	if err := r.rows.Close(); err != nil {
		return r.translate(r.op, err)
	}
	return nil
}

// FetchOne returns the next row's values, or (nil, nil) once the stream is
// exhausted.
func (r *Rows) FetchOne() ([]any, error) {
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return nil, r.translate(r.op, err)
		}
		return nil, nil
	}
	cols, err := r.rows.Columns()
	if err != nil {
		return nil, r.translate(r.op, err)
	}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := r.rows.Scan(ptrs...); err != nil {
		return nil, r.translate(r.op, err)
	}
	return values, nil
}

// FetchAll materializes every remaining row and closes the stream. It is
// unsuitable for very large result sets; bulk history scans should iterate
// with Next/FetchOne instead.
func (r *Rows) FetchAll() ([][]any, error) {
	defer func() { _ = r.rows.Close() }()
	var out [][]any
	for {
		row, err := r.FetchOne()
		if err != nil {
			return nil, err
		}
		if row == nil {
			return out, nil
		}
		out = append(out, row)
	}
}
