package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/taskflow/task-service/internal/apperr"
)

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, apperr.BadRequest("Invalid JSON body"))
		return
	}

	if _, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password, req.Role); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondMessage(w, http.StatusCreated, "User registered successfully. Waiting for admin approval.")
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, apperr.BadRequest("Invalid JSON body"))
		return
	}

	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, loginResponse{
		AccessToken: result.AccessToken,
		User:        loginUser{Role: result.Role, IsApproved: result.IsApproved},
	})
}

// Approve handles admin approval of a pending user
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actingUser(w, r)
	if !ok {
		return
	}

	targetID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		h.respondError(w, apperr.BadRequest("Invalid user id"))
		return
	}

	var req approveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, apperr.BadRequest("Invalid JSON body"))
		return
	}

	user, err := h.svc.Approve(r.Context(), actor, targetID, req.Role)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondMessage(w, http.StatusOK, "User "+user.Username+" approved as "+user.Role)
}
