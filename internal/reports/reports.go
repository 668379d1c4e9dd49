// Package reports is the fixed library of analytic read queries: joins,
// grouped aggregates, derived attributes and above-average comparisons
// over the caregiver-marketplace tables. Queries order by stable keys so
// results are deterministic.
package reports

import (
	"context"
	"database/sql"
	"fmt"

	"log/slog"

	"github.com/aselbek/carelink/internal/db"
)

type Reports struct {
	conn   *db.DB
	logger *slog.Logger
}

func New(conn *db.DB, logger *slog.Logger) *Reports {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reports{conn: conn, logger: logger}
}

// CastMode selects whether an aggregated cost keeps native numeric
// precision or is cast to a whole number database-side.
type CastMode int

const (
	CastNone CastMode = iota
	CastInteger
)

type NamePair struct {
	CaregiverName string `json:"caregiver_name"`
	MemberName    string `json:"member_name"`
}

type Name struct {
	GivenName string `json:"given_name"`
	Surname   string `json:"surname"`
}

type JobApplicantCount struct {
	JobID      int64 `json:"job_id"`
	Applicants int64 `json:"num_applicants"`
}

type CaregiverHours struct {
	CaregiverID int64   `json:"caregiver_user_id"`
	TotalHours  float64 `json:"total_hours"`
}

type CaregiverPay struct {
	GivenName string  `json:"given_name"`
	Surname   string  `json:"surname"`
	Total     float64 `json:"total"`
}

type JobApplicant struct {
	JobID     int64  `json:"job_id"`
	GivenName string `json:"given_name"`
	Surname   string `json:"surname"`
}

// ilike is a case-insensitive substring predicate over one ? argument.
func ilike(col string) string {
	return "lower(" + col + ") LIKE '%' || lower(?) || '%'"
}

// AcceptedAppointmentPairs pairs the caregiver's and member's given names
// for every appointment whose status is "accepted", any casing.
func (r *Reports) AcceptedAppointmentPairs(ctx context.Context) ([]NamePair, error) {
	rows, err := r.conn.QueryRows(ctx, `
		SELECT cu."given_name", mu."given_name"
		FROM "APPOINTMENT" a
		JOIN "CAREGIVER" c ON a."caregiver_user_id" = c."caregiver_user_id"
		JOIN "USER" cu ON c."caregiver_user_id" = cu."user_id"
		JOIN "MEMBER" m ON a."member_user_id" = m."member_user_id"
		JOIN "USER" mu ON m."member_user_id" = mu."user_id"
		WHERE lower(a."status") = 'accepted'
		ORDER BY a."appointment_id"`)
	if err != nil {
		return nil, fmt.Errorf("accepted appointment pairs: %w", err)
	}
	defer rows.Close()

	var out []NamePair
	for rows.Next() {
		var p NamePair
		if err := rows.Scan(&p.CaregiverName, &p.MemberName); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// JobsRequiring returns ids of jobs whose other-requirements text contains
// the substring, case-insensitively.
func (r *Reports) JobsRequiring(ctx context.Context, substr string) ([]int64, error) {
	rows, err := r.conn.QueryRows(ctx, `
		SELECT "job_id" FROM "JOB"
		WHERE `+ilike(`"other_requirements"`)+`
		ORDER BY "job_id"`, substr)
	if err != nil {
		return nil, fmt.Errorf("jobs requiring %q: %w", substr, err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// WorkHoursForCaregivingType lists appointment work hours for members whose
// posted job requires a caregiving type matching the substring.
func (r *Reports) WorkHoursForCaregivingType(ctx context.Context, substr string) ([]float64, error) {
	rows, err := r.conn.QueryRows(ctx, `
		SELECT COALESCE(a."work_hours", 0)
		FROM "APPOINTMENT" a
		JOIN "JOB" j ON a."member_user_id" = j."member_user_id"
		WHERE `+ilike(`j."required_caregiving_type"`)+`
		ORDER BY a."appointment_id"`, substr)
	if err != nil {
		return nil, fmt.Errorf("work hours for %q: %w", substr, err)
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var h float64
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// MembersSeeking names members whose job requires a caregiving type
// matching ctype, whose town matches town and whose house rules match
// rules, all as case-insensitive substrings ANDed together.
func (r *Reports) MembersSeeking(ctx context.Context, ctype, town, rules string) ([]Name, error) {
	rows, err := r.conn.QueryRows(ctx, `
		SELECT u."given_name", u."surname"
		FROM "MEMBER" m
		JOIN "JOB" j ON m."member_user_id" = j."member_user_id"
		JOIN "USER" u ON m."member_user_id" = u."user_id"
		JOIN "ADDRESS" ad ON m."member_user_id" = ad."member_user_id"
		WHERE `+ilike(`j."required_caregiving_type"`)+`
		  AND `+ilike(`ad."town"`)+`
		  AND `+ilike(`m."house_rules"`)+`
		ORDER BY u."user_id"`, ctype, town, rules)
	if err != nil {
		return nil, fmt.Errorf("members seeking: %w", err)
	}
	defer rows.Close()

	var out []Name
	for rows.Next() {
		var n Name
		if err := rows.Scan(&n.GivenName, &n.Surname); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// ApplicationsPerJob counts applications per job, keeping jobs with zero
// applications through the outer join.
func (r *Reports) ApplicationsPerJob(ctx context.Context) ([]JobApplicantCount, error) {
	rows, err := r.conn.QueryRows(ctx, `
		SELECT j."job_id", COUNT(ja."caregiver_user_id")
		FROM "JOB" j
		LEFT JOIN "JOB_APPLICATION" ja ON j."job_id" = ja."job_id"
		GROUP BY j."job_id"
		ORDER BY j."job_id"`)
	if err != nil {
		return nil, fmt.Errorf("applications per job: %w", err)
	}
	defer rows.Close()

	var out []JobApplicantCount
	for rows.Next() {
		var c JobApplicantCount
		if err := rows.Scan(&c.JobID, &c.Applicants); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AcceptedHoursPerCaregiver sums work hours of accepted appointments per
// caregiver.
func (r *Reports) AcceptedHoursPerCaregiver(ctx context.Context) ([]CaregiverHours, error) {
	rows, err := r.conn.QueryRows(ctx, `
		SELECT c."caregiver_user_id", COALESCE(SUM(a."work_hours"), 0)
		FROM "CAREGIVER" c
		JOIN "APPOINTMENT" a ON c."caregiver_user_id" = a."caregiver_user_id"
		WHERE lower(a."status") = 'accepted'
		GROUP BY c."caregiver_user_id"
		ORDER BY c."caregiver_user_id"`)
	if err != nil {
		return nil, fmt.Errorf("accepted hours per caregiver: %w", err)
	}
	defer rows.Close()

	var out []CaregiverHours
	for rows.Next() {
		var h CaregiverHours
		if err := rows.Scan(&h.CaregiverID, &h.TotalHours); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// AverageAcceptedPay returns the average of hourly rate times work hours
// over accepted appointments. ok is false when there are none.
func (r *Reports) AverageAcceptedPay(ctx context.Context) (avg float64, ok bool, err error) {
	var v sql.NullFloat64
	err = r.conn.QueryRow(ctx, `
		SELECT AVG(c."hourly_rate" * a."work_hours")
		FROM "CAREGIVER" c
		JOIN "APPOINTMENT" a ON c."caregiver_user_id" = a."caregiver_user_id"
		WHERE lower(a."status") = 'accepted'`).Scan(&v)
	if err != nil {
		return 0, false, fmt.Errorf("average accepted pay: %w", err)
	}
	return v.Float64, v.Valid, nil
}

// AboveAveragePay names the users whose summed rate-times-hours over
// accepted appointments strictly exceeds the current average. The average
// is a scalar subquery, so the comparison always reflects current data.
func (r *Reports) AboveAveragePay(ctx context.Context) ([]CaregiverPay, error) {
	rows, err := r.conn.QueryRows(ctx, `
		SELECT u."given_name", u."surname", SUM(c."hourly_rate" * a."work_hours")
		FROM "USER" u
		JOIN "CAREGIVER" c ON u."user_id" = c."caregiver_user_id"
		JOIN "APPOINTMENT" a ON c."caregiver_user_id" = a."caregiver_user_id"
		WHERE lower(a."status") = 'accepted'
		GROUP BY u."user_id"
		HAVING SUM(c."hourly_rate" * a."work_hours") > (
			SELECT AVG(c2."hourly_rate" * a2."work_hours")
			FROM "CAREGIVER" c2
			JOIN "APPOINTMENT" a2 ON c2."caregiver_user_id" = a2."caregiver_user_id"
			WHERE lower(a2."status") = 'accepted'
		)
		ORDER BY u."user_id"`)
	if err != nil {
		return nil, fmt.Errorf("above average pay: %w", err)
	}
	defer rows.Close()

	return scanCaregiverPay(rows)
}

// TotalCostPerCaregiver projects each caregiver's name with the summed
// rate-times-hours of their accepted appointments. CastInteger truncates
// the total to a whole number database-side.
func (r *Reports) TotalCostPerCaregiver(ctx context.Context, mode CastMode) ([]CaregiverPay, error) {
	expr := `SUM(c."hourly_rate" * a."work_hours")`
	if mode == CastInteger {
		expr = `CAST(` + expr + ` AS INTEGER)`
	}

	rows, err := r.conn.QueryRows(ctx, `
		SELECT u."given_name", u."surname", `+expr+`
		FROM "USER" u
		JOIN "CAREGIVER" c ON u."user_id" = c."caregiver_user_id"
		JOIN "APPOINTMENT" a ON c."caregiver_user_id" = a."caregiver_user_id"
		WHERE lower(a."status") = 'accepted'
		GROUP BY u."user_id"
		ORDER BY u."user_id"`)
	if err != nil {
		return nil, fmt.Errorf("total cost per caregiver: %w", err)
	}
	defer rows.Close()

	return scanCaregiverPay(rows)
}

// JobApplicationsView lists each job id with its applicants' names,
// joining Job through JobApplication and Caregiver to User.
func (r *Reports) JobApplicationsView(ctx context.Context) ([]JobApplicant, error) {
	rows, err := r.conn.QueryRows(ctx, `
		SELECT j."job_id", u."given_name", u."surname"
		FROM "JOB" j
		JOIN "JOB_APPLICATION" ja ON j."job_id" = ja."job_id"
		JOIN "CAREGIVER" c ON ja."caregiver_user_id" = c."caregiver_user_id"
		JOIN "USER" u ON c."caregiver_user_id" = u."user_id"
		ORDER BY j."job_id", ja."caregiver_user_id"`)
	if err != nil {
		return nil, fmt.Errorf("job applications view: %w", err)
	}
	defer rows.Close()

	var out []JobApplicant
	for rows.Next() {
		var a JobApplicant
		if err := rows.Scan(&a.JobID, &a.GivenName, &a.Surname); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanCaregiverPay(rows *sql.Rows) ([]CaregiverPay, error) {
	var out []CaregiverPay
	for rows.Next() {
		var p CaregiverPay
		var total sql.NullFloat64
		if err := rows.Scan(&p.GivenName, &p.Surname, &total); err != nil {
			return nil, err
		}
		p.Total = total.Float64
		out = append(out, p)
	}
	return out, rows.Err()
}
