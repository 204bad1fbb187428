package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the database connection and provides methods for data access.
type DB struct {
	conn *sql.DB
}

// NewDB creates a new database connection and initializes the schema.
func NewDB(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the necessary tables if they don't exist.
func (db *DB) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			full_name TEXT NOT NULL,
			password_hash BLOB NOT NULL,
			created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY REFERENCES users(id),
			full_name TEXT NOT NULL,
			email TEXT NOT NULL,
			age_range TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			occupation TEXT NOT NULL DEFAULT '',
			hours_per_week TEXT NOT NULL DEFAULT '',
			preferred_schedule TEXT NOT NULL DEFAULT '[]',
			commitment_level TEXT NOT NULL DEFAULT '',
			ai_experience_level TEXT NOT NULL DEFAULT '',
			tools_used TEXT NOT NULL DEFAULT '[]',
			job_role TEXT NOT NULL DEFAULT '',
			learning_style TEXT NOT NULL DEFAULT '',
			goals TEXT NOT NULL DEFAULT '[]',
			current_program TEXT,
			enrollment_status TEXT NOT NULL DEFAULT 'none',
			updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS quiz_responses (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			responses TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS cohorts (
			id TEXT PRIMARY KEY,
			program_id TEXT NOT NULL,
			start_date TEXT NOT NULL,
			capacity INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS cohort_members (
			cohort_id TEXT NOT NULL REFERENCES cohorts(id),
			user_id TEXT NOT NULL REFERENCES users(id),
			joined_at TEXT NOT NULL,
			UNIQUE(cohort_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS enrollments (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			program_id TEXT NOT NULL,
			payment_method TEXT NOT NULL,
			amount_paid REAL NOT NULL,
			transaction_id TEXT NOT NULL,
			status TEXT NOT NULL,
			enrolled_at TEXT NOT NULL,
			started_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS referrals (
			id TEXT PRIMARY KEY,
			referrer_id TEXT NOT NULL REFERENCES users(id),
			referred_user_id TEXT NOT NULL,
			bonus_type TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at TEXT NOT NULL,
			completed_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS bonuses (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			type TEXT NOT NULL,
			value INTEGER NOT NULL,
			issued_at TEXT NOT NULL,
			expires_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS lesson_progress (
			user_id TEXT NOT NULL REFERENCES users(id),
			program_id TEXT NOT NULL,
			module_id TEXT NOT NULL,
			lesson_id TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT NOT NULL,
			UNIQUE(user_id, program_id, lesson_id)
		)`,
		`CREATE TABLE IF NOT EXISTS cohort_messages (
			id TEXT PRIMARY KEY,
			cohort_id TEXT NOT NULL REFERENCES cohorts(id),
			user_id TEXT NOT NULL REFERENCES users(id),
			body TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quiz_user ON quiz_responses(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cohorts_program_start ON cohorts(program_id, start_date)`,
		`CREATE INDEX IF NOT EXISTS idx_members_user ON cohort_members(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_enrollments_user ON enrollments(user_id, enrolled_at)`,
		`CREATE INDEX IF NOT EXISTS idx_referrals_referrer ON referrals(referrer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bonuses_user_expiry ON bonuses(user_id, expires_at)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_cohort ON cohort_messages(cohort_id, created_at)`,
	}

	for _, query := range queries {
		if _, err := db.conn.Exec(query); err != nil {
			return fmt.Errorf("failed to execute schema query: %w", err)
		}
	}

	return nil
}

// serializeStringList converts a slice of strings to a JSON string.
func serializeStringList(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	data, err := json.Marshal(list)
	if err != nil {
		// Fallback to comma-separated if JSON fails
		return strings.Join(list, ",")
	}
	return string(data)
}

// deserializeStringList converts a serialized string list back to a slice.
func deserializeStringList(serialized string) []string {
	if serialized == "" || serialized == "[]" {
		return []string{}
	}

	var result []string
	if err := json.Unmarshal([]byte(serialized), &result); err == nil {
		return result
	}

	// Fallback to comma-separated format for backward compatibility
	return strings.Split(serialized, ",")
}
