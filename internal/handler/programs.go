package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"academy-enrollment-api/internal/catalog"
)

// ListPrograms handles GET /programs
func (h *Handler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"programs": catalog.Programs(),
	})
}

// GetProgram handles GET /programs/{program_id}
func (h *Handler) GetProgram(w http.ResponseWriter, r *http.Request) {
	programID := chi.URLParam(r, "program_id")

	program, ok := catalog.ByID(programID)
	if !ok {
		h.respondError(w, http.StatusNotFound, "program not found")
		return
	}

	h.respondJSON(w, http.StatusOK, program)
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
