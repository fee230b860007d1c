package handler

import (
	"github.com/taskflow/task-service/internal/models"
	"github.com/taskflow/task-service/internal/service"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	Role       string `json:"role"`
	IsApproved bool   `json:"is_approved"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	User        loginUser `json:"user"`
}

type approveRequest struct {
	Role string `json:"role"`
}

type createTaskRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	DueDate      string `json:"due_date"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	AssignedToID int64  `json:"assigned_to_id"`
}

// updateTaskRequest uses pointers so the service can tell an absent field
// from an empty one.
type updateTaskRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	DueDate      *string `json:"due_date"`
	Priority     *string `json:"priority"`
	Status       *string `json:"status"`
	AssignedToID *int64  `json:"assigned_to_id"`
}

func (r *updateTaskRequest) toInput() service.UpdateTaskInput {
	return service.UpdateTaskInput{
		Title:        r.Title,
		Description:  r.Description,
		DueDate:      r.DueDate,
		Priority:     r.Priority,
		Status:       r.Status,
		AssignedToID: r.AssignedToID,
	}
}

type userResponse struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsApproved bool   `json:"is_approved"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Role:       u.Role,
		IsApproved: u.IsApproved,
	}
}

type taskResponse struct {
	ID           int64               `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	DueDate      string              `json:"due_date"`
	Priority     string              `json:"priority"`
	Status       string              `json:"status"`
	CreatedByID  int64               `json:"created_by_id"`
	AssignedToID int64               `json:"assigned_to_id"`
	CreatedBy    *models.UserSummary `json:"created_by"`
	AssignedTo   *models.UserSummary `json:"assigned_to"`
}

func toTaskResponse(t *models.Task) taskResponse {
	return taskResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		DueDate:      t.DueDate.Format(models.DueDateLayout),
		Priority:     t.Priority,
		Status:       t.Status,
		CreatedByID:  t.CreatedByID,
		AssignedToID: t.AssignedToID,
		CreatedBy:    t.CreatedBy,
		AssignedTo:   t.AssignedTo,
	}
}

func toTaskResponses(tasks []models.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, toTaskResponse(&tasks[i]))
	}
	return out
}
