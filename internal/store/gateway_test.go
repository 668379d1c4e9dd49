package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aselbek/carelink/internal/store"
)

func TestCreateAndReadAllRoundTrip(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	err := s.Create(ctx, "USER", map[string]any{
		"user_id":    1,
		"email":      "a@x.com",
		"given_name": "Arman",
		"surname":    "Armanov",
		"password":   "pw",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := s.ReadAll(ctx, "user")
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row["user_id"] != int64(1) || row["email"] != "a@x.com" || row["given_name"] != "Arman" {
		t.Fatalf("unexpected row: %#v", row)
	}
	if row["phone_number"] != nil {
		t.Fatalf("unset column must read back as nil, got %v", row["phone_number"])
	}
}

func TestCreateConflictIgnoreWithFullKey(t *testing.T) {
	s, d := setupStore(t)
	ctx := context.Background()

	fields := map[string]any{
		"user_id": 1, "email": "a@x.com", "given_name": "Arman",
		"surname": "Armanov", "password": "pw",
	}
	if err := s.Create(ctx, "USER", fields); err != nil {
		t.Fatalf("first create: %v", err)
	}
	// same explicit key again: no error, no new row
	if err := s.Create(ctx, "USER", fields); err != nil {
		t.Fatalf("repeat create: %v", err)
	}
	if n := countRows(t, d, "USER"); n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}
}

func TestCreateUniqueViolationIsConflict(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	first := map[string]any{
		"user_id": 1, "email": "a@x.com", "given_name": "Arman",
		"surname": "Armanov", "password": "pw",
	}
	if err := s.Create(ctx, "USER", first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// new key, duplicate unique email: not covered by conflict-ignore
	dup := map[string]any{
		"user_id": 2, "email": "a@x.com", "given_name": "Amina",
		"surname": "Aminova", "password": "pw",
	}
	err := s.Create(ctx, "USER", dup)
	var conflict *store.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestCreateOrphanIsIntegrityError(t *testing.T) {
	s, d := setupStore(t)
	ctx := context.Background()

	err := s.Create(ctx, "JOB", map[string]any{
		"job_id":                   1,
		"member_user_id":           99,
		"required_caregiving_type": "Elderly Care",
	})
	var integrity *store.IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
	if n := countRows(t, d, "JOB"); n != 0 {
		t.Fatalf("orphan insert left %d rows", n)
	}
}

func TestCreateUnknownTableAndColumn(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	err := s.Create(ctx, "NO_SUCH", map[string]any{"x": 1})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	err = s.Create(ctx, "USER", map[string]any{
		"user_id": 1, "email": "a@x.com", "given_name": "A",
		"surname": "B", "password": "pw", "nickname": "x",
	})
	if err == nil {
		t.Fatalf("unknown column must be rejected")
	}
}

func TestUpdatePartial(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	loadTestSeed(t, s)

	affected, err := s.Update(ctx, "USER", "1", map[string]any{"phone_number": "+77773414141"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 affected, got %d", affected)
	}

	rows, err := s.ReadAll(ctx, "USER")
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	for _, row := range rows {
		if row["user_id"] == int64(1) {
			if row["phone_number"] != "+77773414141" {
				t.Fatalf("phone not updated: %v", row["phone_number"])
			}
			if row["email"] != "a@x.com" {
				t.Fatalf("untouched column changed: %v", row["email"])
			}
			return
		}
	}
	t.Fatalf("user 1 missing")
}

func TestUpdateZeroRowsIsNotAnError(t *testing.T) {
	s, _ := setupStore(t)

	affected, err := s.Update(context.Background(), "USER", "999", map[string]any{"city": "Astana"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 affected, got %d", affected)
	}
}

func TestUpdateBadID(t *testing.T) {
	s, _ := setupStore(t)

	_, err := s.Update(context.Background(), "USER", "abc", map[string]any{"city": "Astana"})
	var badReq *store.BadRequestError
	if !errors.As(err, &badReq) {
		t.Fatalf("expected BadRequestError, got %v", err)
	}
	if badReq.Column != "user_id" {
		t.Fatalf("expected user_id, got %s", badReq.Column)
	}
}

func TestDeleteCascades(t *testing.T) {
	s, d := setupStore(t)
	ctx := context.Background()
	loadTestSeed(t, s)

	// user 2 is the member owning the address, the job and the appointment
	if err := s.Delete(ctx, "USER", "2"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	for table, want := range map[string]int{
		"USER":            2,
		"MEMBER":          1,
		"ADDRESS":         0,
		"JOB":             0,
		"JOB_APPLICATION": 0,
		"APPOINTMENT":     0,
	} {
		if n := countRows(t, d, table); n != want {
			t.Fatalf("%s: expected %d rows after cascade, got %d", table, want, n)
		}
	}
}

func TestDeleteBadIDLeavesRows(t *testing.T) {
	s, d := setupStore(t)
	ctx := context.Background()
	loadTestSeed(t, s)

	err := s.Delete(ctx, "caregiver", "abc")
	var badReq *store.BadRequestError
	if !errors.As(err, &badReq) {
		t.Fatalf("expected BadRequestError, got %v", err)
	}
	if n := countRows(t, d, "CAREGIVER"); n != 1 {
		t.Fatalf("bad id must not delete, %d rows left", n)
	}
}

func TestDeleteMissingRowIsNotFound(t *testing.T) {
	s, _ := setupStore(t)

	err := s.Delete(context.Background(), "USER", "42")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
