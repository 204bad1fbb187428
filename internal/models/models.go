package models

import (
	"encoding/json"
	"time"
)

// EnrollmentStatus is the lifecycle state carried on a learner profile.
type EnrollmentStatus string

const (
	EnrollmentStatusNone      EnrollmentStatus = "none"
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusLapsed    EnrollmentStatus = "lapsed"
)

// PaymentMethod identifies how an enrollment was paid.
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCrypto   PaymentMethod = "crypto"
)

// EnrollmentState is the status of an enrollment record itself.
type EnrollmentState string

const (
	EnrollmentActive    EnrollmentState = "active"
	EnrollmentCompleted EnrollmentState = "completed"
	EnrollmentRefunded  EnrollmentState = "refunded"
	EnrollmentCancelled EnrollmentState = "cancelled"
)

// ReferralStatus is the state of a referral edge.
type ReferralStatus string

const (
	ReferralPending   ReferralStatus = "pending"
	ReferralCompleted ReferralStatus = "completed"
)

// DefaultBonusType is issued when the caller does not name one.
const DefaultBonusType = "discount_20"

// BonusValidityDays is the fixed bonus window: expires_at = issued_at + 90 days.
const BonusValidityDays = 90

// User is an authenticated account. PasswordHash never serializes.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the learner profile, one per user, upserted by quiz submission.
type Profile struct {
	ID                string           `json:"id"`
	FullName          string           `json:"full_name"`
	Email             string           `json:"email"`
	AgeRange          string           `json:"age_range"`
	Location          string           `json:"location"`
	Occupation        string           `json:"occupation"`
	HoursPerWeek      string           `json:"hours_per_week"`
	PreferredSchedule []string         `json:"preferred_schedule"`
	CommitmentLevel   string           `json:"commitment_level"`
	AIExperienceLevel string           `json:"ai_experience_level"`
	ToolsUsed         []string         `json:"tools_used"`
	JobRole           string           `json:"job_role"`
	LearningStyle     string           `json:"learning_style"`
	Goals             []string         `json:"goals"`
	CurrentProgram    string           `json:"current_program,omitempty"`
	EnrollmentStatus  EnrollmentStatus `json:"enrollment_status"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// QuizResponse is an append-only record of one quiz submission.
// Responses holds the raw answer body verbatim.
type QuizResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Responses json.RawMessage `json:"responses"`
	CreatedAt time.Time       `json:"created_at"`
}

// Cohort is a scheduled instance of a program.
type Cohort struct {
	ID        string    `json:"id"`
	ProgramID string    `json:"program_id"`
	StartDate time.Time `json:"start_date"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

// CohortMember joins a learner to a cohort. At most one row per
// (cohort, user) pair.
type CohortMember struct {
	CohortID string    `json:"cohort_id"`
	UserID   string    `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

// Enrollment is one paid enrollment. Immutable after creation except for
// status transitions.
type Enrollment struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	ProgramID     string          `json:"program_id"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	AmountPaid    float64         `json:"amount_paid"`
	TransactionID string          `json:"transaction_id"`
	Status        EnrollmentState `json:"status"`
	EnrolledAt    time.Time       `json:"enrolled_at"`
	StartedAt     time.Time       `json:"started_at"`
}

// EnrollmentDetail is an enrollment joined with its program and cohort
// membership for history listings.
type EnrollmentDetail struct {
	Enrollment
	ProgramName     string `json:"program_name"`
	ProgramDuration string `json:"program_duration"`
	CohortID        string `json:"cohort_id,omitempty"`
}

// Referral is a referrer -> referred-user edge.
type Referral struct {
	ID             string         `json:"id"`
	ReferrerID     string         `json:"referrer_id"`
	ReferredUserID string         `json:"referred_user_id"`
	BonusType      string         `json:"bonus_type"`
	Status         ReferralStatus `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
}

// Bonus is a value grant to a learner. Expired bonuses are filtered at
// read time, never deleted.
type Bonus struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Value     int       `json:"value"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LessonProgress marks a lesson done or not for one learner. One row per
// (user, lesson).
type LessonProgress struct {
	UserID    string    `json:"user_id"`
	ProgramID string    `json:"program_id"`
	ModuleID  string    `json:"module_id"`
	LessonID  string    `json:"lesson_id"`
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CohortMessage is one post on a cohort's feed.
type CohortMessage struct {
	ID        string    `json:"id"`
	CohortID  string    `json:"cohort_id"`
	UserID    string    `json:"user_id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries a signed session token.
type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// EnrollmentRequest is the body for POST /enrollment. Field names are a
// wire contract with existing clients.
type EnrollmentRequest struct {
	ProgramID     string        `json:"programId"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Amount        float64       `json:"amount"`
	TransactionID string        `json:"transactionId"`
}

// EnrollmentResponse is the success payload for POST /enrollment.
type EnrollmentResponse struct {
	Success      bool   `json:"success"`
	EnrollmentID string `json:"enrollment_id"`
	Message      string `json:"message"`
}

// ReferralRequest is the body for POST /referral.
type ReferralRequest struct {
	ReferredUserID string `json:"referredUserId"`
	BonusType      string `json:"bonusType,omitempty"`
}

// ReferralResponse is the success payload for POST /referral.
type ReferralResponse struct {
	Success    bool   `json:"success"`
	ReferralID string `json:"referral_id"`
	Message    string `json:"message"`
}

// ReferralStatsResponse is the payload for GET /referral.
type ReferralStatsResponse struct {
	TotalReferrals      int     `json:"totalReferrals"`
	SuccessfulReferrals int     `json:"successfulReferrals"`
	PendingReferrals    int     `json:"pendingReferrals"`
	AvailableBonuses    []Bonus `json:"availableBonuses"`
}

// QuizSubmitResponse is the success payload for POST /quiz.
type QuizSubmitResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"user_id"`
}

// ProgressRequest is the body for POST /progress.
type ProgressRequest struct {
	ProgramID string `json:"programId"`
	ModuleID  string `json:"moduleId"`
	LessonID  string `json:"lessonId"`
	Completed bool   `json:"completed"`
}

// PostMessageRequest is the body for POST /cohort/feed.
type PostMessageRequest struct {
	Body string `json:"body"`
}

// CreateCohortRequest is the body for POST /admin/cohorts.
type CreateCohortRequest struct {
	ProgramID string    `json:"programId"`
	StartDate time.Time `json:"startDate"`
	Capacity  int       `json:"capacity"`
}

// AdminOverview aggregates learner and revenue counts for the admin page.
type AdminOverview struct {
	TotalLearners     int     `json:"total_learners"`
	TotalEnrollments  int     `json:"total_enrollments"`
	ActiveEnrollments int     `json:"active_enrollments"`
	TotalReferrals    int     `json:"total_referrals"`
	PendingReferrals  int     `json:"pending_referrals"`
	TotalRevenue      float64 `json:"total_revenue"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}
