package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aselbek/carelink/internal/schema"
)

// SequenceResult is the per-entity outcome of a reconciliation pass.
type SequenceResult struct {
	Table   string
	Column  string
	Max     int64
	Applied bool
	Reason  string
}

// ReconcileSequences advances each generated-key entity's auto-increment
// generator to the current maximum stored key, so keys assigned after a
// bulk load never collide with explicitly seeded ones. It is best-effort
// per entity: one failure is recorded and the rest still run.
func (s *Store) ReconcileSequences(ctx context.Context) []SequenceResult {
	results := make([]SequenceResult, 0, len(s.catalog.Tables()))
	for _, t := range s.catalog.Tables() {
		r := SequenceResult{Table: t.Name, Column: t.PrimaryKey[0]}
		if !t.Generated {
			r.Reason = "no generated primary key"
			results = append(results, r)
			s.logger.Info("sequence skipped", "table", r.Table, "reason", r.Reason)
			continue
		}
		if err := s.reconcileOne(ctx, t, &r); err != nil {
			r.Reason = err.Error()
			s.logger.Warn("sequence reconciliation failed", "table", r.Table, "error", err)
		} else {
			r.Applied = true
			s.logger.Info("sequence reconciled", "table", r.Table, "max", r.Max)
		}
		results = append(results, r)
	}
	return results
}

func (s *Store) reconcileOne(ctx context.Context, t *schema.Table, r *SequenceResult) error {
	return s.conn.WithTx(ctx, func(tx *sql.Tx) error {
		query := "SELECT COALESCE(MAX(" + schema.QuoteIdent(r.Column) + "), 0) FROM " +
			schema.QuoteIdent(t.Name)
		if err := tx.QueryRowContext(ctx, query).Scan(&r.Max); err != nil {
			return fmt.Errorf("max key: %w", err)
		}

		// AUTOINCREMENT generators live in sqlite_sequence, keyed by the
		// unquoted table name.
		res, err := tx.ExecContext(ctx,
			`UPDATE sqlite_sequence SET seq = ? WHERE name = ?`, r.Max, t.Name)
		if err != nil {
			return fmt.Errorf("set generator: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO sqlite_sequence (name, seq) VALUES (?, ?)`, t.Name, r.Max); err != nil {
				return fmt.Errorf("register generator: %w", err)
			}
		}
		return nil
	})
}
