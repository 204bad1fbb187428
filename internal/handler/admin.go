package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"academy-enrollment-api/internal/models"
)

// AdminOverview handles GET /admin/overview
func (h *Handler) AdminOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "Failed to load overview")
		return
	}

	h.respondJSON(w, http.StatusOK, overview)
}

// CreateCohort handles POST /admin/cohorts
func (h *Handler) CreateCohort(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCohortRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	cohort, err := h.service.CreateCohort(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, err, "Failed to create cohort")
		return
	}

	h.respondJSON(w, http.StatusCreated, cohort)
}

// CompleteReferral handles POST /admin/referrals/{referral_id}/complete
func (h *Handler) CompleteReferral(w http.ResponseWriter, r *http.Request) {
	referralID := chi.URLParam(r, "referral_id")

	if err := h.service.CompleteReferral(r.Context(), referralID); err != nil {
		h.respondServiceError(w, err, "Failed to complete referral")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
