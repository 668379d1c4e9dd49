package store_test

import (
	"context"
	"testing"
)

func TestReconcileSequencesKeySafety(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	loadTestSeed(t, s)

	results := s.ReconcileSequences(ctx)
	byTable := map[string]bool{}
	for _, r := range results {
		byTable[r.Table] = r.Applied
		switch r.Table {
		case "USER", "JOB", "APPOINTMENT":
			if !r.Applied {
				t.Fatalf("%s: expected reconciliation, got reason %q", r.Table, r.Reason)
			}
		default:
			if r.Applied {
				t.Fatalf("%s: no generated key, must be skipped", r.Table)
			}
		}
	}
	if len(byTable) != 7 {
		t.Fatalf("expected a result per table, got %d", len(byTable))
	}

	// the next generated key must land strictly above the seeded maximum
	err := s.Create(ctx, "USER", map[string]any{
		"email": "next@x.com", "given_name": "Next", "surname": "User", "password": "pw",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := s.ReadAll(ctx, "USER")
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	var maxID int64
	var newID int64
	for _, row := range rows {
		id := row["user_id"].(int64)
		if id > maxID {
			maxID = id
		}
		if row["email"] == "next@x.com" {
			newID = id
		}
	}
	// seeded users are 1..3
	if newID <= 3 {
		t.Fatalf("generated key %d collides with seeded keys", newID)
	}
	if newID != maxID {
		t.Fatalf("generated key %d is not the maximum %d", newID, maxID)
	}
}

func TestReconcileSequencesEmptyTables(t *testing.T) {
	s, _ := setupStore(t)

	// empty tables reconcile to zero without error
	for _, r := range s.ReconcileSequences(context.Background()) {
		switch r.Table {
		case "USER", "JOB", "APPOINTMENT":
			if !r.Applied || r.Max != 0 {
				t.Fatalf("%s: expected applied with max 0, got %+v", r.Table, r)
			}
		}
	}
}
