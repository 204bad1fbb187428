package service

import (
	"context"

	"github.com/google/uuid"

	"academy-enrollment-api/internal/catalog"
	"academy-enrollment-api/internal/models"
	"academy-enrollment-api/internal/validation"
)

// LessonStatus is a catalog lesson merged with the learner's completion
// state.
type LessonStatus struct {
	catalog.Lesson
	Completed bool `json:"completed"`
}

// ModuleProgress is one curriculum module with per-lesson status.
type ModuleProgress struct {
	ID          string         `json:"id"`
	Week        int            `json:"week"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Duration    string         `json:"duration"`
	Lessons     []LessonStatus `json:"lessons"`
}

// CurriculumView is a program's curriculum with the caller's progress.
type CurriculumView struct {
	ProgramID        string           `json:"program_id"`
	Modules          []ModuleProgress `json:"modules"`
	TotalLessons     int              `json:"total_lessons"`
	CompletedLessons int              `json:"completed_lessons"`
	Progress         int              `json:"progress"`
}

// Curriculum returns a program's modules merged with the caller's lesson
// progress. Progress is the percentage of lessons marked done.
func (s *Service) Curriculum(ctx context.Context, userID, programID string) (CurriculumView, error) {
	modules := catalog.CurriculumFor(programID)
	if modules == nil {
		return CurriculumView{}, ErrUnknownProgram
	}

	progress, err := s.db.ListLessonProgress(userID, programID)
	if err != nil {
		return CurriculumView{}, err
	}

	done := make(map[string]bool, len(progress))
	for _, lp := range progress {
		if lp.Completed {
			done[lp.LessonID] = true
		}
	}

	view := CurriculumView{ProgramID: programID}
	for _, m := range modules {
		mp := ModuleProgress{
			ID:          m.ID,
			Week:        m.Week,
			Title:       m.Title,
			Description: m.Description,
			Duration:    m.Duration,
		}
		for _, l := range m.Lessons {
			completed := done[l.ID]
			mp.Lessons = append(mp.Lessons, LessonStatus{Lesson: l, Completed: completed})
			view.TotalLessons++
			if completed {
				view.CompletedLessons++
			}
		}
		view.Modules = append(view.Modules, mp)
	}

	if view.TotalLessons > 0 {
		view.Progress = (view.CompletedLessons*100 + view.TotalLessons/2) / view.TotalLessons
	}

	return view, nil
}

// SaveLessonProgress marks a lesson done or undone. Idempotent per
// (user, lesson).
func (s *Service) SaveLessonProgress(ctx context.Context, userID string, req models.ProgressRequest) error {
	modules := catalog.CurriculumFor(req.ProgramID)
	if modules == nil {
		return ErrUnknownProgram
	}

	found := false
	for _, m := range modules {
		if m.ID != req.ModuleID {
			continue
		}
		for _, l := range m.Lessons {
			if l.ID == req.LessonID {
				found = true
				break
			}
		}
	}
	if !found {
		return &validation.ValidationError{
			Field:   "lessonId",
			Message: "is not part of the program's curriculum",
		}
	}

	return s.db.UpsertLessonProgress(models.LessonProgress{
		UserID:    userID,
		ProgramID: req.ProgramID,
		ModuleID:  req.ModuleID,
		LessonID:  req.LessonID,
		Completed: req.Completed,
		UpdatedAt: s.now(),
	})
}

// maxFeedMessageLen bounds a single cohort post.
const maxFeedMessageLen = 2000

// defaultFeedLimit is how many messages a feed read returns.
const defaultFeedLimit = 50

// PostCohortMessage appends a message to the caller's cohort feed. The
// caller must belong to a cohort.
func (s *Service) PostCohortMessage(ctx context.Context, userID, body string) (models.CohortMessage, error) {
	body = validation.SanitizeString(body)
	if body == "" {
		return models.CohortMessage{}, &validation.ValidationError{
			Field:   "body",
			Message: "is required",
		}
	}
	if len(body) > maxFeedMessageLen {
		return models.CohortMessage{}, &validation.ValidationError{
			Field:   "body",
			Message: "cannot exceed 2000 characters",
		}
	}

	cohort, err := s.db.CohortForUser(userID)
	if err != nil {
		return models.CohortMessage{}, err
	}
	if cohort == nil {
		return models.CohortMessage{}, ErrNoCohort
	}

	msg := models.CohortMessage{
		ID:        uuid.New().String(),
		CohortID:  cohort.ID,
		UserID:    userID,
		Body:      body,
		CreatedAt: s.now(),
	}

	if err := s.db.InsertCohortMessage(msg); err != nil {
		return models.CohortMessage{}, err
	}

	return msg, nil
}

// CohortFeed returns the newest messages on the caller's cohort feed.
func (s *Service) CohortFeed(ctx context.Context, userID string) ([]models.CohortMessage, error) {
	cohort, err := s.db.CohortForUser(userID)
	if err != nil {
		return nil, err
	}
	if cohort == nil {
		return nil, ErrNoCohort
	}

	messages, err := s.db.ListCohortMessages(cohort.ID, defaultFeedLimit)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.CohortMessage{}
	}

	return messages, nil
}
