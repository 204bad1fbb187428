package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"academy-enrollment-api/internal/models"
	"academy-enrollment-api/internal/recommend"
	"academy-enrollment-api/internal/validation"
)

// SubmitQuiz validates a raw answer body, upserts the learner's profile,
// and appends the submission to the quiz history. Both writes are
// authoritative: a failure in either fails the call. The raw body is
// stored verbatim so resubmissions build a history rather than
// overwriting.
func (s *Service) SubmitQuiz(ctx context.Context, userID string, raw json.RawMessage) (models.QuizSubmitResponse, error) {
	var answers map[string]interface{}
	if err := json.Unmarshal(raw, &answers); err != nil {
		return models.QuizSubmitResponse{}, &validation.ValidationError{
			Field:   "body",
			Message: "must be a JSON object",
		}
	}

	if err := validation.ValidateAnswers(answers); err != nil {
		return models.QuizSubmitResponse{}, err
	}

	now := s.now()
	profile := models.Profile{
		ID:                userID,
		FullName:          validation.StringAnswer(answers, "name"),
		Email:             validation.StringAnswer(answers, "email"),
		AgeRange:          validation.StringAnswer(answers, "age"),
		Location:          validation.StringAnswer(answers, "location"),
		Occupation:        validation.StringAnswer(answers, "occupation"),
		HoursPerWeek:      validation.StringAnswer(answers, "hours_per_week"),
		PreferredSchedule: validation.StringSliceAnswer(answers, "preferred_schedule"),
		CommitmentLevel:   validation.StringAnswer(answers, "commitment_level"),
		AIExperienceLevel: validation.StringAnswer(answers, "ai_exposure"),
		ToolsUsed:         validation.StringSliceAnswer(answers, "tools_used"),
		JobRole:           validation.StringAnswer(answers, "job_role"),
		LearningStyle:     validation.StringAnswer(answers, "learning_style"),
		Goals:             validation.StringSliceAnswer(answers, "income_goal"),
		UpdatedAt:         now,
	}

	if err := s.db.UpsertProfile(profile); err != nil {
		return models.QuizSubmitResponse{}, fmt.Errorf("failed to save profile: %w", err)
	}

	response := models.QuizResponse{
		ID:        uuid.New().String(),
		UserID:    userID,
		Responses: raw,
		CreatedAt: now,
	}

	if err := s.db.InsertQuizResponse(response); err != nil {
		return models.QuizSubmitResponse{}, fmt.Errorf("failed to save quiz response: %w", err)
	}

	s.events.PublishQuizSubmitted(ctx, userID, response.ID)

	return models.QuizSubmitResponse{Success: true, UserID: userID}, nil
}

// ProfileView is a learner profile with its computed tier recommendation.
type ProfileView struct {
	Profile        models.Profile           `json:"profile"`
	Recommendation recommend.Recommendation `json:"recommendation"`
}

// GetProfile returns the caller's profile and the recommendation derived
// from it. The recommendation is recomputed on every read; it is a pure
// function of the stored answers.
func (s *Service) GetProfile(ctx context.Context, userID string) (ProfileView, error) {
	p, err := s.db.GetProfile(userID)
	if err != nil {
		return ProfileView{}, err
	}
	if p == nil {
		return ProfileView{}, ErrProfileNotFound
	}

	rec := recommend.Classify(recommend.Inputs{
		HoursPerWeek: p.HoursPerWeek,
		AIExposure:   p.AIExperienceLevel,
		JobRole:      p.JobRole,
	})

	return ProfileView{Profile: *p, Recommendation: rec}, nil
}
