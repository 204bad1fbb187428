package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"academy-enrollment-api/internal/catalog"
	"academy-enrollment-api/internal/models"
	"academy-enrollment-api/internal/validation"
)

// NextCohort returns the earliest cohort for a program starting at or
// after now. A nil cohort is a valid "none scheduled" result, not an
// error.
func (s *Service) NextCohort(ctx context.Context, programID string, now time.Time) (*models.Cohort, error) {
	if !catalog.ValidProgramID(programID) {
		return nil, ErrUnknownProgram
	}

	return s.db.NextCohort(programID, now)
}

// Enroll records a paid enrollment. The enrollment insert is the
// authoritative success signal; cohort assignment and the profile status
// sync are best-effort and reconciled out-of-band if they fail.
func (s *Service) Enroll(ctx context.Context, userID string, req models.EnrollmentRequest) (models.EnrollmentResponse, error) {
	if err := validation.ValidateEnrollmentRequest(req); err != nil {
		return models.EnrollmentResponse{}, err
	}
	if !catalog.ValidProgramID(req.ProgramID) {
		return models.EnrollmentResponse{}, ErrUnknownProgram
	}

	now := s.now()
	enrollment := models.Enrollment{
		ID:            uuid.New().String(),
		UserID:        userID,
		ProgramID:     req.ProgramID,
		PaymentMethod: req.PaymentMethod,
		AmountPaid:    req.Amount,
		TransactionID: validation.SanitizeString(req.TransactionID),
		Status:        models.EnrollmentActive,
		EnrolledAt:    now,
		StartedAt:     now,
	}

	if err := s.db.InsertEnrollment(enrollment); err != nil {
		return models.EnrollmentResponse{}, fmt.Errorf("failed to record enrollment: %w", err)
	}

	cohortID := s.assignCohort(ctx, userID, req.ProgramID, now)

	if err := s.db.UpdateProfileEnrollment(userID, req.ProgramID, models.EnrollmentStatusActive); err != nil {
		s.log.Warn("profile enrollment sync failed",
			zap.String("user_id", userID),
			zap.String("program_id", req.ProgramID),
			zap.Error(err))
	}

	s.events.PublishEnrollmentCreated(ctx, enrollment, cohortID)

	return models.EnrollmentResponse{
		Success:      true,
		EnrollmentID: enrollment.ID,
		Message:      "Enrollment successful! Welcome to your program.",
	}, nil
}

// assignCohort attaches the learner to the program's next cohort.
// Best-effort: every failure path logs and returns "", leaving the
// learner enrolled without a cohort until a later backfill.
func (s *Service) assignCohort(ctx context.Context, userID, programID string, now time.Time) string {
	cohort, err := s.db.NextCohort(programID, now)
	if err != nil {
		s.log.Warn("cohort lookup failed",
			zap.String("user_id", userID),
			zap.String("program_id", programID),
			zap.Error(err))
		return ""
	}
	if cohort == nil {
		s.log.Info("no upcoming cohort scheduled",
			zap.String("user_id", userID),
			zap.String("program_id", programID))
		return ""
	}

	inserted, err := s.db.InsertCohortMember(models.CohortMember{
		CohortID: cohort.ID,
		UserID:   userID,
		JoinedAt: now,
	})
	if err != nil {
		s.log.Warn("cohort assignment failed",
			zap.String("user_id", userID),
			zap.String("cohort_id", cohort.ID),
			zap.Error(err))
		return ""
	}
	if !inserted {
		s.log.Info("already a cohort member",
			zap.String("user_id", userID),
			zap.String("cohort_id", cohort.ID))
	}

	return cohort.ID
}

// ListEnrollments returns the caller's enrollment history, newest first,
// with program details resolved from the catalog.
func (s *Service) ListEnrollments(ctx context.Context, userID string) ([]models.EnrollmentDetail, error) {
	enrollments, err := s.db.ListEnrollments(userID)
	if err != nil {
		return nil, err
	}

	for i := range enrollments {
		if p, ok := catalog.ByID(enrollments[i].ProgramID); ok {
			enrollments[i].ProgramName = p.Name
			enrollments[i].ProgramDuration = p.Duration
		}
	}

	if enrollments == nil {
		enrollments = []models.EnrollmentDetail{}
	}

	return enrollments, nil
}

// CreateCohort schedules a new cohort instance for a program. Admin only.
func (s *Service) CreateCohort(ctx context.Context, req models.CreateCohortRequest) (models.Cohort, error) {
	if !catalog.ValidProgramID(req.ProgramID) {
		return models.Cohort{}, ErrUnknownProgram
	}
	if req.StartDate.IsZero() {
		return models.Cohort{}, &validation.ValidationError{
			Field:   "startDate",
			Message: "is required",
		}
	}
	if req.Capacity < 0 {
		return models.Cohort{}, &validation.ValidationError{
			Field:   "capacity",
			Message: "must be non-negative",
		}
	}

	cohort := models.Cohort{
		ID:        uuid.New().String(),
		ProgramID: req.ProgramID,
		StartDate: req.StartDate.UTC(),
		Capacity:  req.Capacity,
		CreatedAt: s.now(),
	}

	if err := s.db.InsertCohort(cohort); err != nil {
		return models.Cohort{}, err
	}

	return cohort, nil
}

// Overview aggregates learner, enrollment, and referral counts for the
// admin page.
func (s *Service) Overview(ctx context.Context) (models.AdminOverview, error) {
	return s.db.Overview()
}
