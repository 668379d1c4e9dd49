package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aselbek/carelink/internal/schema"
)

// Create inserts one row into the named table. When fields supplies every
// primary-key column the insert is conflict-ignore keyed on those columns,
// so repeating a call with the same key is a no-op; otherwise a uniqueness
// violation surfaces as a ConflictError.
func (s *Store) Create(ctx context.Context, table string, fields map[string]any) error {
	t, err := s.resolve(table)
	if err != nil {
		return err
	}

	cols, args, err := orderedValues(t, fields)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return fmt.Errorf("%s: no columns to insert", t.Name)
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(schema.QuoteIdent(t.Name))
	b.WriteString(" (")
	writeColumnList(&b, cols)
	b.WriteString(") VALUES (")
	b.WriteString(placeholders(len(cols)))
	b.WriteString(")")
	if t.HasFullKey(fields) {
		b.WriteString(" ON CONFLICT(")
		writeColumnList(&b, t.PrimaryKey)
		b.WriteString(") DO NOTHING")
	}

	return s.conn.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, b.String(), args...); err != nil {
			return classify(t.Name, err)
		}
		return nil
	})
}

// ReadAll returns every row of the named table in storage order, column
// values keyed by column name. Date and time columns are already held in
// their canonical textual encoding, so values pass through as stored.
func (s *Store) ReadAll(ctx context.Context, table string) ([]map[string]any, error) {
	t, err := s.resolve(table)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	writeColumnList(&b, t.ColumnNames())
	b.WriteString(" FROM ")
	b.WriteString(schema.QuoteIdent(t.Name))

	out := []map[string]any{}
	err = s.conn.WithTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, b.String())
		if err != nil {
			return classify(t.Name, err)
		}
		defer rows.Close()

		for rows.Next() {
			dest := scanDest(t)
			if err := rows.Scan(dest...); err != nil {
				return fmt.Errorf("%s: scan: %w", t.Name, err)
			}
			row := make(map[string]any, len(t.Columns))
			for i, c := range t.Columns {
				row[c.Name] = scanValue(dest[i])
			}
			out = append(out, row)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies fields as a partial update to the rows matching rawID on
// the table's first declared primary-key column and returns the affected
// count. Zero affected rows is not an error at this layer. Composite-key
// tables are only partially addressable through this path: the match key is
// the first key column alone, so several rows may be touched.
func (s *Store) Update(ctx context.Context, table, rawID string, fields map[string]any) (int64, error) {
	t, err := s.resolve(table)
	if err != nil {
		return 0, err
	}
	key := t.KeyColumn()
	id, err := schema.CoerceID(key, rawID)
	if err != nil {
		return 0, &BadRequestError{Column: key.Name}
	}

	cols, args, err := orderedValues(t, fields)
	if err != nil {
		return 0, err
	}
	if len(cols) == 0 {
		return 0, fmt.Errorf("%s: no columns to update", t.Name)
	}

	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(schema.QuoteIdent(t.Name))
	b.WriteString(" SET ")
	for i, c := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(schema.QuoteIdent(c))
		b.WriteString(" = ?")
	}
	b.WriteString(" WHERE ")
	b.WriteString(schema.QuoteIdent(key.Name))
	b.WriteString(" = ?")
	args = append(args, id)

	var affected int64
	err = s.conn.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, b.String(), args...)
		if err != nil {
			return classify(t.Name, err)
		}
		affected, _ = res.RowsAffected()
		return nil
	})
	return affected, err
}

// Delete removes the row matching rawID on the first declared primary-key
// column. A rawID that cannot be coerced to the key's type yields a
// BadRequestError; zero affected rows yields ErrNotFound.
func (s *Store) Delete(ctx context.Context, table, rawID string) error {
	t, err := s.resolve(table)
	if err != nil {
		return err
	}
	key := t.KeyColumn()
	id, err := schema.CoerceID(key, rawID)
	if err != nil {
		return &BadRequestError{Column: key.Name}
	}

	query := "DELETE FROM " + schema.QuoteIdent(t.Name) +
		" WHERE " + schema.QuoteIdent(key.Name) + " = ?"

	return s.conn.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, id)
		if err != nil {
			return classify(t.Name, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%s %s: %w", t.Name, rawID, ErrNotFound)
		}
		return nil
	})
}

// orderedValues coerces fields into (columns, args) in the catalog's
// declared column order, rejecting names the table does not have.
func orderedValues(t *schema.Table, fields map[string]any) ([]string, []any, error) {
	known := 0
	cols := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for _, c := range t.Columns {
		v, ok := fields[c.Name]
		if !ok {
			continue
		}
		known++
		coerced, err := schema.CoerceValue(c, v)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", t.Name, err)
		}
		cols = append(cols, c.Name)
		args = append(args, coerced)
	}
	if known != len(fields) {
		for name := range fields {
			if _, ok := t.Column(name); !ok {
				return nil, nil, fmt.Errorf("%s: unknown column %q", t.Name, name)
			}
		}
	}
	return cols, args, nil
}

func writeColumnList(b *strings.Builder, cols []string) {
	for i, c := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(schema.QuoteIdent(c))
	}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func scanDest(t *schema.Table) []any {
	dest := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		switch c.Type {
		case schema.TypeInteger:
			dest[i] = new(sql.NullInt64)
		case schema.TypeDecimal:
			dest[i] = new(sql.NullFloat64)
		default:
			dest[i] = new(sql.NullString)
		}
	}
	return dest
}

func scanValue(dest any) any {
	switch v := dest.(type) {
	case *sql.NullInt64:
		if v.Valid {
			return v.Int64
		}
	case *sql.NullFloat64:
		if v.Valid {
			return v.Float64
		}
	case *sql.NullString:
		if v.Valid {
			return v.String
		}
	}
	return nil
}
