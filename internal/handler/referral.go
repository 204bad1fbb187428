package handler

import (
	"net/http"

	"academy-enrollment-api/internal/middleware"
	"academy-enrollment-api/internal/models"
)

// TrackReferral handles POST /referral
func (h *Handler) TrackReferral(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.ReferralRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.RecordReferral(r.Context(), userID, req)
	if err != nil {
		h.respondServiceError(w, err, "Failed to track referral")
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// GetReferralStats handles GET /referral
func (h *Handler) GetReferralStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := h.service.ReferralStats(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, err, "Failed to load referral stats")
		return
	}

	h.respondJSON(w, http.StatusOK, stats)
}
