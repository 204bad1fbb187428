package database

import (
	"fmt"
	"time"

	"academy-enrollment-api/internal/models"
)

// UpsertLessonProgress records a lesson's done/undone state for a learner.
// Keyed by (user, program, lesson) since lesson IDs repeat across programs;
// toggling updates in place.
func (db *DB) UpsertLessonProgress(lp models.LessonProgress) error {
	query := `INSERT INTO lesson_progress (
		user_id, program_id, module_id, lesson_id, completed, updated_at
	) VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(user_id, program_id, lesson_id) DO UPDATE SET
		completed = excluded.completed,
		updated_at = excluded.updated_at`

	completed := 0
	if lp.Completed {
		completed = 1
	}

	_, err := db.conn.Exec(
		query,
		lp.UserID,
		lp.ProgramID,
		lp.ModuleID,
		lp.LessonID,
		completed,
		lp.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert lesson progress: %w", err)
	}

	return nil
}

// ListLessonProgress returns a learner's progress rows for a program.
func (db *DB) ListLessonProgress(userID, programID string) ([]models.LessonProgress, error) {
	query := `SELECT user_id, program_id, module_id, lesson_id, completed, updated_at
		FROM lesson_progress
		WHERE user_id = ? AND program_id = ?`

	rows, err := db.conn.Query(query, userID, programID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lesson progress: %w", err)
	}
	defer rows.Close()

	var out []models.LessonProgress
	for rows.Next() {
		var lp models.LessonProgress
		var completed int
		var updatedStr string

		err := rows.Scan(&lp.UserID, &lp.ProgramID, &lp.ModuleID, &lp.LessonID, &completed, &updatedStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson progress: %w", err)
		}

		lp.Completed = completed != 0
		lp.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)

		out = append(out, lp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lesson progress: %w", err)
	}

	return out, nil
}

// InsertCohortMessage appends one post to a cohort feed.
func (db *DB) InsertCohortMessage(m models.CohortMessage) error {
	query := `INSERT INTO cohort_messages (id, cohort_id, user_id, body, created_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err := db.conn.Exec(
		query,
		m.ID,
		m.CohortID,
		m.UserID,
		m.Body,
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert cohort message: %w", err)
	}

	return nil
}

// ListCohortMessages returns the newest messages on a cohort feed, with
// author display names resolved.
func (db *DB) ListCohortMessages(cohortID string, limit int) ([]models.CohortMessage, error) {
	query := `SELECT m.id, m.cohort_id, m.user_id, u.full_name, m.body, m.created_at
		FROM cohort_messages m
		JOIN users u ON u.id = m.user_id
		WHERE m.cohort_id = ?
		ORDER BY m.created_at DESC
		LIMIT ?`

	rows, err := db.conn.Query(query, cohortID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query cohort messages: %w", err)
	}
	defer rows.Close()

	var out []models.CohortMessage
	for rows.Next() {
		var m models.CohortMessage
		var createdStr string

		err := rows.Scan(&m.ID, &m.CohortID, &m.UserID, &m.Author, &m.Body, &createdStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cohort message: %w", err)
		}

		m.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		out = append(out, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cohort messages: %w", err)
	}

	return out, nil
}

// Overview aggregates the counts the admin page shows.
func (db *DB) Overview() (models.AdminOverview, error) {
	var o models.AdminOverview

	queries := []struct {
		query string
		dest  interface{}
	}{
		{`SELECT COUNT(*) FROM profiles`, &o.TotalLearners},
		{`SELECT COUNT(*) FROM enrollments`, &o.TotalEnrollments},
		{`SELECT COUNT(*) FROM enrollments WHERE status = 'active'`, &o.ActiveEnrollments},
		{`SELECT COUNT(*) FROM referrals`, &o.TotalReferrals},
		{`SELECT COUNT(*) FROM referrals WHERE status = 'pending'`, &o.PendingReferrals},
		{`SELECT COALESCE(SUM(amount_paid), 0) FROM enrollments WHERE status != 'refunded'`, &o.TotalRevenue},
	}

	for _, q := range queries {
		if err := db.conn.QueryRow(q.query).Scan(q.dest); err != nil {
			return models.AdminOverview{}, fmt.Errorf("failed to aggregate overview: %w", err)
		}
	}

	return o, nil
}
