package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/taskflow/task-service/internal/apperr"
)

// Profile returns the caller's own account
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actingUser(w, r)
	if !ok {
		return
	}
	h.respond(w, http.StatusOK, toUserResponse(actor))
}

// ListUsers returns all accounts (admin only)
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actingUser(w, r)
	if !ok {
		return
	}

	users, err := h.svc.ListUsers(r.Context(), actor)
	if err != nil {
		h.respondError(w, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	h.respond(w, http.StatusOK, out)
}

// DeleteUser removes a user and cascades to their tasks (admin only)
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actingUser(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.respondError(w, apperr.NotFound("User not found"))
		return
	}

	if err := h.svc.DeleteUser(r.Context(), actor, id); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondMessage(w, http.StatusOK, "User and associated tasks deleted successfully")
}
