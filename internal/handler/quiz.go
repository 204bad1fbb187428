package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"academy-enrollment-api/internal/middleware"
)

// SubmitQuiz handles POST /quiz
func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.SubmitQuiz(r.Context(), userID, json.RawMessage(raw))
	if err != nil {
		h.respondServiceError(w, err, "Failed to save quiz")
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// GetProfile handles GET /profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	view, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err, "Failed to load profile")
		return
	}

	h.respondJSON(w, http.StatusOK, view)
}
