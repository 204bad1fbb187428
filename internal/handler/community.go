package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"academy-enrollment-api/internal/middleware"
	"academy-enrollment-api/internal/models"
)

// GetCurriculum handles GET /curriculum/{program_id}
func (h *Handler) GetCurriculum(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	programID := chi.URLParam(r, "program_id")

	view, err := h.service.Curriculum(r.Context(), userID, programID)
	if err != nil {
		h.respondServiceError(w, err, "Failed to load curriculum")
		return
	}

	h.respondJSON(w, http.StatusOK, view)
}

// SaveProgress handles POST /progress
func (h *Handler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.ProgressRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.SaveLessonProgress(r.Context(), userID, req); err != nil {
		h.respondServiceError(w, err, "Failed to save progress")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetCohortFeed handles GET /cohort/feed
func (h *Handler) GetCohortFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	messages, err := h.service.CohortFeed(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err, "Failed to load cohort feed")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
	})
}

// PostCohortMessage handles POST /cohort/feed
func (h *Handler) PostCohortMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.PostMessageRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	msg, err := h.service.PostCohortMessage(r.Context(), userID, req.Body)
	if err != nil {
		h.respondServiceError(w, err, "Failed to post message")
		return
	}

	h.respondJSON(w, http.StatusCreated, msg)
}
