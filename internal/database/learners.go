package database

import (
	"database/sql"
	"fmt"
	"time"

	"academy-enrollment-api/internal/models"
)

// CreateUser inserts a new account row.
func (db *DB) CreateUser(u models.User) error {
	query := `INSERT INTO users (id, email, full_name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err := db.conn.Exec(
		query,
		u.ID,
		u.Email,
		u.FullName,
		u.PasswordHash,
		u.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByEmail returns the user with the given email, or nil if none.
func (db *DB) GetUserByEmail(email string) (*models.User, error) {
	query := `SELECT id, email, full_name, password_hash, created_at
		FROM users WHERE email = ?`

	var u models.User
	var createdAtStr string

	err := db.conn.QueryRow(query, email).Scan(
		&u.ID,
		&u.Email,
		&u.FullName,
		&u.PasswordHash,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	return &u, nil
}

// GetUserByID returns the user with the given id, or nil if none.
func (db *DB) GetUserByID(id string) (*models.User, error) {
	query := `SELECT id, email, full_name, password_hash, created_at
		FROM users WHERE id = ?`

	var u models.User
	var createdAtStr string

	err := db.conn.QueryRow(query, id).Scan(
		&u.ID,
		&u.Email,
		&u.FullName,
		&u.PasswordHash,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	return &u, nil
}

// UpsertProfile creates or updates a learner profile keyed by user id.
// current_program and enrollment_status are owned by the enrollment flow
// and are left untouched on update.
func (db *DB) UpsertProfile(p models.Profile) error {
	query := `INSERT INTO profiles (
		id, full_name, email, age_range, location, occupation,
		hours_per_week, preferred_schedule, commitment_level,
		ai_experience_level, tools_used, job_role, learning_style, goals,
		updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		full_name = excluded.full_name,
		email = excluded.email,
		age_range = excluded.age_range,
		location = excluded.location,
		occupation = excluded.occupation,
		hours_per_week = excluded.hours_per_week,
		preferred_schedule = excluded.preferred_schedule,
		commitment_level = excluded.commitment_level,
		ai_experience_level = excluded.ai_experience_level,
		tools_used = excluded.tools_used,
		job_role = excluded.job_role,
		learning_style = excluded.learning_style,
		goals = excluded.goals,
		updated_at = excluded.updated_at`

	_, err := db.conn.Exec(
		query,
		p.ID,
		p.FullName,
		p.Email,
		p.AgeRange,
		p.Location,
		p.Occupation,
		p.HoursPerWeek,
		serializeStringList(p.PreferredSchedule),
		p.CommitmentLevel,
		p.AIExperienceLevel,
		serializeStringList(p.ToolsUsed),
		p.JobRole,
		p.LearningStyle,
		serializeStringList(p.Goals),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

// GetProfile returns the learner profile for a user, or nil if none.
func (db *DB) GetProfile(id string) (*models.Profile, error) {
	query := `SELECT id, full_name, email, age_range, location, occupation,
		hours_per_week, preferred_schedule, commitment_level,
		ai_experience_level, tools_used, job_role, learning_style, goals,
		current_program, enrollment_status, updated_at
		FROM profiles WHERE id = ?`

	var p models.Profile
	var schedule, tools, goals string
	var currentProgram sql.NullString
	var updatedAtStr string

	err := db.conn.QueryRow(query, id).Scan(
		&p.ID,
		&p.FullName,
		&p.Email,
		&p.AgeRange,
		&p.Location,
		&p.Occupation,
		&p.HoursPerWeek,
		&schedule,
		&p.CommitmentLevel,
		&p.AIExperienceLevel,
		&tools,
		&p.JobRole,
		&p.LearningStyle,
		&goals,
		&currentProgram,
		&p.EnrollmentStatus,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	p.PreferredSchedule = deserializeStringList(schedule)
	p.ToolsUsed = deserializeStringList(tools)
	p.Goals = deserializeStringList(goals)
	p.CurrentProgram = currentProgram.String

	p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return &p, nil
}

// UpdateProfileEnrollment syncs a profile's program pointer and status
// after a successful enrollment.
func (db *DB) UpdateProfileEnrollment(id, programID string, status models.EnrollmentStatus) error {
	query := `UPDATE profiles
		SET current_program = ?, enrollment_status = ?, updated_at = ?
		WHERE id = ?`

	res, err := db.conn.Exec(query, programID, status, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to update profile enrollment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no profile for user %s", id)
	}

	return nil
}

// InsertQuizResponse appends one submission to the quiz history.
func (db *DB) InsertQuizResponse(qr models.QuizResponse) error {
	query := `INSERT INTO quiz_responses (id, user_id, responses, created_at)
		VALUES (?, ?, ?, ?)`

	_, err := db.conn.Exec(
		query,
		qr.ID,
		qr.UserID,
		string(qr.Responses),
		qr.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert quiz response: %w", err)
	}

	return nil
}

// CountQuizResponses returns the number of submissions for a user.
func (db *DB) CountQuizResponses(userID string) (int, error) {
	var count int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM quiz_responses WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count quiz responses: %w", err)
	}
	return count, nil
}
