package schema

import "strings"

// QuoteIdent quotes an identifier for SQLite, escaping embedded quotes.
// Table names in this schema are upper-case, so quoting is always applied.
func QuoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func sqlType(t ColumnType) string {
	switch t {
	case TypeInteger:
		return "INTEGER"
	case TypeDecimal:
		return "NUMERIC"
	case TypeDate:
		return "DATE"
	case TypeTime:
		return "TIME"
	default:
		return "TEXT"
	}
}

// CreateStatement renders the idempotent DDL for a table, including
// cascade-delete references and the auto-increment generator for tables
// with a generated key.
func (t *Table) CreateStatement() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(QuoteIdent(t.Name))
	b.WriteString(" (\n")

	singleKey := len(t.PrimaryKey) == 1
	for i, c := range t.Columns {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString("\t")
		b.WriteString(QuoteIdent(c.Name))
		b.WriteString(" ")
		b.WriteString(sqlType(c.Type))
		if singleKey && c.Name == t.PrimaryKey[0] {
			b.WriteString(" PRIMARY KEY")
			if t.Generated {
				b.WriteString(" AUTOINCREMENT")
			}
		} else {
			if c.NotNull {
				b.WriteString(" NOT NULL")
			}
			if c.Unique {
				b.WriteString(" UNIQUE")
			}
		}
		if c.Default == DefaultCurrentDate {
			b.WriteString(" DEFAULT CURRENT_DATE")
		}
		if c.RefersTo != nil {
			b.WriteString(" REFERENCES ")
			b.WriteString(QuoteIdent(c.RefersTo.Table))
			b.WriteString("(")
			b.WriteString(QuoteIdent(c.RefersTo.Column))
			b.WriteString(") ON DELETE CASCADE")
		}
	}

	if !singleKey {
		b.WriteString(",\n\tPRIMARY KEY (")
		for i, pk := range t.PrimaryKey {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(QuoteIdent(pk))
		}
		b.WriteString(")")
	}

	b.WriteString("\n)")
	return b.String()
}
