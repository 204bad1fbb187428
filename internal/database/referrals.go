package database

import (
	"database/sql"
	"fmt"
	"time"

	"academy-enrollment-api/internal/models"
)

// InsertReferral writes the authoritative referral edge.
func (db *DB) InsertReferral(r models.Referral) error {
	query := `INSERT INTO referrals (
		id, referrer_id, referred_user_id, bonus_type, status, created_at
	) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := db.conn.Exec(
		query,
		r.ID,
		r.ReferrerID,
		r.ReferredUserID,
		r.BonusType,
		r.Status,
		r.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert referral: %w", err)
	}

	return nil
}

// GetReferral returns one referral by id, or nil if none.
func (db *DB) GetReferral(id string) (*models.Referral, error) {
	query := `SELECT id, referrer_id, referred_user_id, bonus_type, status,
		created_at, completed_at
		FROM referrals WHERE id = ?`

	var r models.Referral
	var createdStr string
	var completedStr sql.NullString

	err := db.conn.QueryRow(query, id).Scan(
		&r.ID,
		&r.ReferrerID,
		&r.ReferredUserID,
		&r.BonusType,
		&r.Status,
		&createdStr,
		&completedStr,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query referral: %w", err)
	}

	r.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	if completedStr.Valid {
		t, err := time.Parse(time.RFC3339, completedStr.String)
		if err == nil {
			r.CompletedAt = &t
		}
	}

	return &r, nil
}

// ListReferralsByReferrer returns every referral attributed to a referrer.
func (db *DB) ListReferralsByReferrer(referrerID string) ([]models.Referral, error) {
	query := `SELECT id, referrer_id, referred_user_id, bonus_type, status,
		created_at, completed_at
		FROM referrals
		WHERE referrer_id = ?
		ORDER BY created_at DESC`

	rows, err := db.conn.Query(query, referrerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query referrals: %w", err)
	}
	defer rows.Close()

	var out []models.Referral
	for rows.Next() {
		var r models.Referral
		var createdStr string
		var completedStr sql.NullString

		err := rows.Scan(
			&r.ID,
			&r.ReferrerID,
			&r.ReferredUserID,
			&r.BonusType,
			&r.Status,
			&createdStr,
			&completedStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan referral: %w", err)
		}

		r.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		if completedStr.Valid {
			if t, perr := time.Parse(time.RFC3339, completedStr.String); perr == nil {
				r.CompletedAt = &t
			}
		}

		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating referrals: %w", err)
	}

	return out, nil
}

// CompleteReferral transitions a pending referral to completed. Returns
// false when the referral does not exist or already completed.
func (db *DB) CompleteReferral(id string, completedAt time.Time) (bool, error) {
	query := `UPDATE referrals
		SET status = ?, completed_at = ?
		WHERE id = ? AND status = ?`

	res, err := db.conn.Exec(query, models.ReferralCompleted,
		completedAt.Format(time.RFC3339), id, models.ReferralPending)
	if err != nil {
		return false, fmt.Errorf("failed to complete referral: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected > 0, nil
}

// InsertBonus grants a bonus to a learner.
func (db *DB) InsertBonus(b models.Bonus) error {
	query := `INSERT INTO bonuses (id, user_id, type, value, issued_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := db.conn.Exec(
		query,
		b.ID,
		b.UserID,
		b.Type,
		b.Value,
		b.IssuedAt.UTC().Format(time.RFC3339),
		b.ExpiresAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert bonus: %w", err)
	}

	return nil
}

// AvailableBonuses returns a user's bonuses with expiry strictly after
// now. Expired rows stay in the table; they are only filtered here.
func (db *DB) AvailableBonuses(userID string, now time.Time) ([]models.Bonus, error) {
	query := `SELECT id, user_id, type, value, issued_at, expires_at
		FROM bonuses
		WHERE user_id = ? AND expires_at > ?
		ORDER BY expires_at ASC`

	// expires_at comparison is lexical on RFC3339 text, so both sides
	// must be in UTC.
	rows, err := db.conn.Query(query, userID, now.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to query bonuses: %w", err)
	}
	defer rows.Close()

	var out []models.Bonus
	for rows.Next() {
		var b models.Bonus
		var issuedStr, expiresStr string

		err := rows.Scan(&b.ID, &b.UserID, &b.Type, &b.Value, &issuedStr, &expiresStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bonus: %w", err)
		}

		b.IssuedAt, err = time.Parse(time.RFC3339, issuedStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse issued_at: %w", err)
		}
		b.ExpiresAt, err = time.Parse(time.RFC3339, expiresStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse expires_at: %w", err)
		}

		out = append(out, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bonuses: %w", err)
	}

	return out, nil
}
