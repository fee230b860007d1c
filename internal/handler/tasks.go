package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/taskflow/task-service/internal/apperr"
	"github.com/taskflow/task-service/internal/middleware"
	"github.com/taskflow/task-service/internal/models"
	"github.com/taskflow/task-service/internal/service"
)

func (h *Handler) actingUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.respondError(w, apperr.Unauthenticated("Missing token"))
		return nil, false
	}
	return actor, true
}

func taskID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, apperr.NotFound("Task not found")
	}
	return id, nil
}

// CreateTask handles task creation
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actingUser(w, r)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, apperr.BadRequest("Invalid JSON body"))
		return
	}

	_, err := h.svc.CreateTask(r.Context(), actor, service.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		Priority:     req.Priority,
		Status:       req.Status,
		AssignedToID: req.AssignedToID,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondMessage(w, http.StatusCreated, "Task created successfully")
}

// ListTasks returns the tasks visible to the caller
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actingUser(w, r)
	if !ok {
		return
	}

	tasks, err := h.svc.ListTasks(r.Context(), actor)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, toTaskResponses(tasks))
}

// GetTask returns a single task
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actingUser(w, r)
	if !ok {
		return
	}
	id, err := taskID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	task, err := h.svc.GetTask(r.Context(), actor, id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, toTaskResponse(task))
}

// UpdateTask applies the field-level mutation rules
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actingUser(w, r)
	if !ok {
		return
	}
	id, err := taskID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, apperr.BadRequest("Invalid JSON body"))
		return
	}

	if _, err := h.svc.UpdateTask(r.Context(), actor, id, req.toInput()); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondMessage(w, http.StatusOK, "Task updated successfully")
}

// DeleteTask removes a task (admin only)
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actingUser(w, r)
	if !ok {
		return
	}
	id, err := taskID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.svc.DeleteTask(r.Context(), actor, id); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondMessage(w, http.StatusOK, "Task deleted successfully")
}
