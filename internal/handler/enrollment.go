package handler

import (
	"net/http"
	"time"

	"academy-enrollment-api/internal/middleware"
	"academy-enrollment-api/internal/models"
	"academy-enrollment-api/internal/validation"
)

// CreateEnrollment handles POST /enrollment
func (h *Handler) CreateEnrollment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.EnrollmentRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Enroll(r.Context(), userID, req)
	if err != nil {
		h.respondServiceError(w, err, "Failed to process enrollment")
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// ListEnrollments handles GET /enrollment
func (h *Handler) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	enrollments, err := h.service.ListEnrollments(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err, "Failed to load enrollments")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"enrollments": enrollments,
	})
}

// NextCohort handles GET /cohorts/next?program_id=...&now=...
//
// The now parameter is optional and mainly useful for previewing
// allocation at a future date; it must be RFC 3339 when present.
func (h *Handler) NextCohort(w http.ResponseWriter, r *http.Request) {
	programID := r.URL.Query().Get("program_id")
	if programID == "" {
		h.respondError(w, http.StatusBadRequest, "program_id query parameter is required")
		return
	}

	now := time.Now().UTC()
	if raw := r.URL.Query().Get("now"); raw != "" {
		parsed, err := validation.ValidateTimeString(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "now must be an RFC 3339 timestamp")
			return
		}
		now = parsed
	}

	cohort, err := h.service.NextCohort(r.Context(), programID, now)
	if err != nil {
		h.respondServiceError(w, err, "Failed to look up cohorts")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"cohort": cohort,
	})
}
