package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aselbek/carelink/internal/schema"
	"github.com/qri-io/jsonschema"
)

//go:embed seed_schema.json
var seedSchemaJSON []byte

var (
	seedSchemaOnce sync.Once
	seedSchema     *jsonschema.Schema
	seedSchemaErr  error
)

func compiledSeedSchema() (*jsonschema.Schema, error) {
	seedSchemaOnce.Do(func() {
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(seedSchemaJSON, rs); err != nil {
			seedSchemaErr = fmt.Errorf("compile seed schema: %w", err)
			return
		}
		seedSchema = rs
	})
	return seedSchema, seedSchemaErr
}

// seedGroups maps seed-document arrays onto tables in parent-before-
// dependent order. A dependent loaded before its parent would trip a
// foreign-key violation.
var seedGroups = []struct {
	Key   string
	Table string
}{
	{"users", "USER"},
	{"caregivers", "CAREGIVER"},
	{"members", "MEMBER"},
	{"addresses", "ADDRESS"},
	{"jobs", "JOB"},
	{"job_applications", "JOB_APPLICATION"},
	{"appointments", "APPOINTMENT"},
}

// Load applies a seed document in one transaction. Each entity group is a
// single multi-row insert with conflict-ignore semantics keyed on the
// entity's primary key, so re-running the same load leaves row counts
// unchanged. A failure aborts the remaining groups and rolls back.
func (s *Store) Load(ctx context.Context, doc []byte) error {
	rs, err := compiledSeedSchema()
	if err != nil {
		return err
	}
	keyErrs, err := rs.ValidateBytes(ctx, doc)
	if err != nil {
		return fmt.Errorf("seed document: %w", err)
	}
	if len(keyErrs) > 0 {
		return fmt.Errorf("seed document invalid: %s", keyErrs[0].Error())
	}

	var payload map[string][]map[string]any
	if err := json.Unmarshal(doc, &payload); err != nil {
		return fmt.Errorf("seed document: %w", err)
	}

	return s.conn.WithTx(ctx, func(tx *sql.Tx) error {
		for _, g := range seedGroups {
			records := payload[g.Key]
			if len(records) == 0 {
				continue
			}
			t, _ := s.catalog.Lookup(g.Table)
			inserted, err := loadGroup(ctx, tx, t, records)
			if err != nil {
				return err
			}
			s.logger.Info("seed group loaded",
				"table", t.Name, "records", len(records), "inserted", inserted)
		}
		return nil
	})
}

// loadGroup bulk-inserts one entity's records. The column list is the
// union of columns the batch supplies; records missing a current-date-
// defaulted column get the default filled in, since a multi-row VALUES
// insert cannot fall back to the column default per row.
func loadGroup(ctx context.Context, tx *sql.Tx, t *schema.Table, records []map[string]any) (int64, error) {
	supplied := make(map[string]bool)
	for _, rec := range records {
		for name := range rec {
			if _, ok := t.Column(name); !ok {
				return 0, fmt.Errorf("%s: unknown column %q", t.Name, name)
			}
			supplied[name] = true
		}
	}

	var cols []schema.Column
	for _, c := range t.Columns {
		if supplied[c.Name] {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return 0, fmt.Errorf("%s: records carry no columns", t.Name)
	}

	args := make([]any, 0, len(records)*len(cols))
	for _, rec := range records {
		for _, c := range cols {
			v, ok := rec[c.Name]
			if !ok {
				if c.Default == schema.DefaultCurrentDate {
					args = append(args, time.Now().UTC().Format(schema.DateLayout))
				} else {
					args = append(args, nil)
				}
				continue
			}
			coerced, err := schema.CoerceValue(c, v)
			if err != nil {
				return 0, fmt.Errorf("%s: %w", t.Name, err)
			}
			args = append(args, coerced)
		}
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(schema.QuoteIdent(t.Name))
	b.WriteString(" (")
	for i, c := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(schema.QuoteIdent(c.Name))
	}
	b.WriteString(") VALUES ")
	row := "(" + placeholders(len(cols)) + ")"
	for i := range records {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(row)
	}
	b.WriteString(" ON CONFLICT(")
	for i, pk := range t.PrimaryKey {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(schema.QuoteIdent(pk))
	}
	b.WriteString(") DO NOTHING")

	res, err := tx.ExecContext(ctx, b.String(), args...)
	if err != nil {
		return 0, classify(t.Name, err)
	}
	inserted, _ := res.RowsAffected()
	return inserted, nil
}
