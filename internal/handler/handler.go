package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/taskflow/task-service/internal/apperr"
	"github.com/taskflow/task-service/internal/service"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Health reports process liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, map[string]string{"message": "Backend is running"})
}

func (h *Handler) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			h.log.Errorf("Failed to encode response: %v", err)
		}
	}
}

func (h *Handler) respondMessage(w http.ResponseWriter, status int, message string) {
	h.respond(w, status, map[string]string{"message": message})
}

// respondError maps an error kind to its HTTP status. Unclassified errors
// are logged and rendered as a generic server fault, never as internal text.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	switch apperr.KindOf(err) {
	case apperr.KindBadRequest:
		status = http.StatusBadRequest
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindInvalidCredentials, apperr.KindUnauthenticated:
		status = http.StatusUnauthorized
	case apperr.KindNotApproved, apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindNotFound:
		status = http.StatusNotFound
	default:
		h.log.Errorf("Internal error: %v", err)
		message = "Internal server error"
	}

	h.respond(w, status, map[string]string{"error": message})
}
