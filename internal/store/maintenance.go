package store

import (
	"context"
	"database/sql"
)

// RoundMode selects whether the rate adjustment keeps native numeric
// precision or rounds the result to two decimals database-side.
type RoundMode int

const (
	RoundOff RoundMode = iota
	RoundTo2
)

// UpdatePhoneByName sets the phone number of every user matching the given
// and surname, returning the affected count.
func (s *Store) UpdatePhoneByName(ctx context.Context, given, surname, phone string) (int64, error) {
	var affected int64
	err := s.conn.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE "USER" SET "phone_number" = ? WHERE "given_name" = ? AND "surname" = ?`,
			phone, given, surname)
		if err != nil {
			return classify("USER", err)
		}
		affected, _ = res.RowsAffected()
		return nil
	})
	return affected, err
}

// AdjustHourlyRates raises every caregiver's rate: below 10 gets +0.30,
// the rest gain 10%. RoundTo2 rounds the stored result to two decimals.
func (s *Store) AdjustHourlyRates(ctx context.Context, mode RoundMode) (int64, error) {
	expr := `CASE WHEN "hourly_rate" < 10 THEN "hourly_rate" + 0.3 ELSE "hourly_rate" * 1.10 END`
	if mode == RoundTo2 {
		expr = `ROUND(` + expr + `, 2)`
	}

	var affected int64
	err := s.conn.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE "CAREGIVER" SET "hourly_rate" = `+expr)
		if err != nil {
			return classify("CAREGIVER", err)
		}
		affected, _ = res.RowsAffected()
		return nil
	})
	return affected, err
}

// DeleteJobsByPoster removes every job posted by the member whose user
// record matches the given and surname. An unknown poster deletes nothing.
func (s *Store) DeleteJobsByPoster(ctx context.Context, given, surname string) (int64, error) {
	var affected int64
	err := s.conn.WithTx(ctx, func(tx *sql.Tx) error {
		var userID int64
		err := tx.QueryRowContext(ctx,
			`SELECT "user_id" FROM "USER" WHERE "given_name" = ? AND "surname" = ?`,
			given, surname).Scan(&userID)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return classify("USER", err)
		}

		res, err := tx.ExecContext(ctx,
			`DELETE FROM "JOB" WHERE "member_user_id" = ?`, userID)
		if err != nil {
			return classify("JOB", err)
		}
		affected, _ = res.RowsAffected()
		return nil
	})
	return affected, err
}

// DeleteMembersOnStreet removes every member whose address is on the named
// street. Dependent addresses, jobs, applications and appointments go with
// them through cascade delete.
func (s *Store) DeleteMembersOnStreet(ctx context.Context, street string) (int64, error) {
	var affected int64
	err := s.conn.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM "MEMBER" WHERE "member_user_id" IN (SELECT "member_user_id" FROM "ADDRESS" WHERE "street" = ?)`,
			street)
		if err != nil {
			return classify("MEMBER", err)
		}
		affected, _ = res.RowsAffected()
		return nil
	})
	return affected, err
}
