package handler

import (
	"net/http"

	"academy-enrollment-api/internal/models"
)

// Register handles POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Register(req.Email, req.Password, req.FullName)
	if err != nil {
		h.respondServiceError(w, err, "Failed to register")
		return
	}

	h.respondJSON(w, http.StatusCreated, resp)
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		h.respondServiceError(w, err, "Failed to log in")
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}
