package database

import (
	"database/sql"
	"fmt"
	"time"

	"academy-enrollment-api/internal/models"
)

// InsertCohort creates a new cohort instance.
func (db *DB) InsertCohort(c models.Cohort) error {
	query := `INSERT INTO cohorts (id, program_id, start_date, capacity, created_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err := db.conn.Exec(
		query,
		c.ID,
		c.ProgramID,
		c.StartDate.UTC().Format(time.RFC3339),
		c.Capacity,
		c.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert cohort: %w", err)
	}

	return nil
}

// NextCohort returns the earliest cohort for the program starting at or
// after now, or nil when none is scheduled.
func (db *DB) NextCohort(programID string, now time.Time) (*models.Cohort, error) {
	query := `SELECT id, program_id, start_date, capacity, created_at
		FROM cohorts
		WHERE program_id = ? AND start_date >= ?
		ORDER BY start_date ASC
		LIMIT 1`

	var c models.Cohort
	var startStr, createdStr string

	// start_date comparison is lexical on RFC3339 text, so both sides
	// must be in UTC.
	err := db.conn.QueryRow(query, programID, now.UTC().Format(time.RFC3339)).Scan(
		&c.ID,
		&c.ProgramID,
		&startStr,
		&c.Capacity,
		&createdStr,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query next cohort: %w", err)
	}

	c.StartDate, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start_date: %w", err)
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)

	return &c, nil
}

// InsertCohortMember attaches a learner to a cohort. The insert is
// idempotent: a second attach of the same pair is a no-op. Returns whether
// a new row was written.
func (db *DB) InsertCohortMember(m models.CohortMember) (bool, error) {
	query := `INSERT INTO cohort_members (cohort_id, user_id, joined_at)
		VALUES (?, ?, ?)
		ON CONFLICT(cohort_id, user_id) DO NOTHING`

	res, err := db.conn.Exec(query, m.CohortID, m.UserID, m.JoinedAt.Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("failed to insert cohort member: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected > 0, nil
}

// CohortForUser returns the cohort the user most recently joined, or nil
// when the user has no membership.
func (db *DB) CohortForUser(userID string) (*models.Cohort, error) {
	query := `SELECT c.id, c.program_id, c.start_date, c.capacity, c.created_at
		FROM cohorts c
		JOIN cohort_members cm ON cm.cohort_id = c.id
		WHERE cm.user_id = ?
		ORDER BY cm.joined_at DESC
		LIMIT 1`

	var c models.Cohort
	var startStr, createdStr string

	err := db.conn.QueryRow(query, userID).Scan(
		&c.ID,
		&c.ProgramID,
		&startStr,
		&c.Capacity,
		&createdStr,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cohort for user: %w", err)
	}

	c.StartDate, _ = time.Parse(time.RFC3339, startStr)
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)

	return &c, nil
}

// InsertEnrollment writes the authoritative enrollment row.
func (db *DB) InsertEnrollment(e models.Enrollment) error {
	query := `INSERT INTO enrollments (
		id, user_id, program_id, payment_method, amount_paid,
		transaction_id, status, enrolled_at, started_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.conn.Exec(
		query,
		e.ID,
		e.UserID,
		e.ProgramID,
		e.PaymentMethod,
		e.AmountPaid,
		e.TransactionID,
		e.Status,
		e.EnrolledAt.Format(time.RFC3339),
		e.StartedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert enrollment: %w", err)
	}

	return nil
}

// ListEnrollments returns a user's enrollments, newest first, each with
// the cohort the user joined for that enrollment's program (if any).
func (db *DB) ListEnrollments(userID string) ([]models.EnrollmentDetail, error) {
	query := `SELECT e.id, e.user_id, e.program_id, e.payment_method,
		e.amount_paid, e.transaction_id, e.status, e.enrolled_at, e.started_at,
		(
			SELECT cm.cohort_id
			FROM cohort_members cm
			JOIN cohorts c ON c.id = cm.cohort_id
			WHERE cm.user_id = e.user_id AND c.program_id = e.program_id
			ORDER BY cm.joined_at DESC
			LIMIT 1
		) AS cohort_id
		FROM enrollments e
		WHERE e.user_id = ?
		ORDER BY e.enrolled_at DESC`

	rows, err := db.conn.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var out []models.EnrollmentDetail
	for rows.Next() {
		var d models.EnrollmentDetail
		var enrolledStr, startedStr string
		var cohortID sql.NullString

		err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.ProgramID,
			&d.PaymentMethod,
			&d.AmountPaid,
			&d.TransactionID,
			&d.Status,
			&enrolledStr,
			&startedStr,
			&cohortID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}

		d.EnrolledAt, err = time.Parse(time.RFC3339, enrolledStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse enrolled_at: %w", err)
		}
		d.StartedAt, err = time.Parse(time.RFC3339, startedStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse started_at: %w", err)
		}
		d.CohortID = cohortID.String

		out = append(out, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollments: %w", err)
	}

	return out, nil
}
