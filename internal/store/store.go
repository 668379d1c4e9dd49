// Package store is the generic relational data-gateway: schema
// materialization, idempotent bulk loading, sequence reconciliation and
// table-name-addressed CRUD. No table-specific code lives here; every
// operation resolves its target through the schema catalog.
package store

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/aselbek/carelink/internal/db"
	"github.com/aselbek/carelink/internal/schema"
)

type Store struct {
	conn    *db.DB
	catalog *schema.Catalog
	logger  *slog.Logger
}

func New(conn *db.DB, catalog *schema.Catalog, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{conn: conn, catalog: catalog, logger: logger}
}

// Catalog returns the schema catalog the store resolves tables against.
func (s *Store) Catalog() *schema.Catalog {
	return s.catalog
}

// EnsureSchema creates every catalog table if absent. It is idempotent and
// fatal at startup when it fails: the caller must not serve traffic against
// a store it could not materialize.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, t := range s.catalog.Tables() {
		if _, err := s.conn.Exec(ctx, t.CreateStatement()); err != nil {
			return fmt.Errorf("create table %s: %w", t.Name, err)
		}
	}
	return nil
}

// resolve maps a runtime table name onto its descriptor, case-normalized.
func (s *Store) resolve(name string) (*schema.Table, error) {
	t, ok := s.catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("table %q: %w", name, ErrNotFound)
	}
	return t, nil
}
