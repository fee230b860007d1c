package service

import (
	"context"
	"time"

	"github.com/taskflow/task-service/internal/apperr"
	"github.com/taskflow/task-service/internal/models"
)

// CreateTaskInput carries the fields of a task creation request. AssignedToID
// of zero means "not supplied".
type CreateTaskInput struct {
	Title        string
	Description  string
	DueDate      string
	Priority     string
	Status       string
	AssignedToID int64
}

// UpdateTaskInput uses pointers so an absent field is distinguishable from an
// empty one: absent fields retain their previous value.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	DueDate      *string
	Priority     *string
	Status       *string
	AssignedToID *int64
}

// canView is the task visibility rule. Admins see everything; everyone else
// sees a task iff they are its assignee, its creator, or the creator is an
// admin. The last clause is the broadcast rule: admin-created tasks are
// visible network-wide.
func canView(user *models.User, task *models.Task) bool {
	if user.IsAdmin() {
		return true
	}
	if task.AssignedToID == user.ID || task.CreatedByID == user.ID {
		return true
	}
	return task.CreatedBy != nil && task.CreatedBy.Role == models.RoleAdmin
}

// CreateTask creates a task on behalf of actor. Admins may assign anyone;
// other users default to themselves when no assignee is supplied.
func (s *Service) CreateTask(ctx context.Context, actor *models.User, input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" || input.Description == "" || input.DueDate == "" {
		return nil, apperr.BadRequest("Missing required fields")
	}

	dueDate, err := time.Parse(models.DueDateLayout, input.DueDate)
	if err != nil {
		return nil, apperr.BadRequest("due_date must be formatted as YYYY-MM-DD")
	}

	assigneeID := input.AssignedToID
	if assigneeID == 0 && !actor.IsAdmin() {
		assigneeID = actor.ID
	}

	priority := input.Priority
	if priority == "" {
		priority = models.DefaultPriority
	}
	status := input.Status
	if status == "" {
		status = models.DefaultStatus
	}

	task := &models.Task{
		Title:        input.Title,
		Description:  input.Description,
		DueDate:      dueDate,
		Priority:     priority,
		Status:       status,
		CreatedByID:  actor.ID,
		AssignedToID: assigneeID,
		CreatedBy:    actor.Summary(),
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	s.log.Infof("Task created: %d by user %d", task.ID, actor.ID)
	s.notifyTaskAssigned(ctx, task, actor)
	return task, nil
}

// ListTasks returns the tasks visible to actor.
func (s *Service) ListTasks(ctx context.Context, actor *models.User) ([]models.Task, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return tasks, nil
	}

	visible := []models.Task{}
	for _, task := range tasks {
		if canView(actor, &task) {
			visible = append(visible, task)
		}
	}
	return visible, nil
}

// GetTask returns a single task if actor may see it. The missing-id check
// runs before the visibility check.
func (s *Service) GetTask(ctx context.Context, actor *models.User, id int64) (*models.Task, error) {
	task, err := s.store.TaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, task) {
		return nil, apperr.Forbidden("You do not have access to this task")
	}
	return task, nil
}

// UpdateTask applies the role-keyed mutation rules: admins may change any
// field, the assignee may change only the status, everyone else is rejected.
// A rejected update leaves the task untouched.
func (s *Service) UpdateTask(ctx context.Context, actor *models.User, id int64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.store.TaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.IsAdmin():
		if input.Title != nil {
			task.Title = *input.Title
		}
		if input.Description != nil {
			task.Description = *input.Description
		}
		if input.DueDate != nil {
			dueDate, err := time.Parse(models.DueDateLayout, *input.DueDate)
			if err != nil {
				return nil, apperr.BadRequest("due_date must be formatted as YYYY-MM-DD")
			}
			task.DueDate = dueDate
		}
		if input.Priority != nil {
			task.Priority = *input.Priority
		}
		if input.Status != nil {
			task.Status = *input.Status
		}
		if input.AssignedToID != nil {
			task.AssignedToID = *input.AssignedToID
		}

	case task.AssignedToID == actor.ID:
		if input.Status == nil {
			return nil, apperr.BadRequest("You can only update status")
		}
		if input.Title != nil || input.Description != nil || input.DueDate != nil ||
			input.Priority != nil || input.AssignedToID != nil {
			return nil, apperr.BadRequest("You can only update status")
		}
		task.Status = *input.Status

	default:
		return nil, apperr.Forbidden("You do not have access to this task")
	}

	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, err
	}

	s.log.Infof("Task updated: %d by user %d", task.ID, actor.ID)
	return task, nil
}

// DeleteTask removes a task. Admin only; a missing id reports NotFound
// before the role check.
func (s *Service) DeleteTask(ctx context.Context, actor *models.User, id int64) error {
	if _, err := s.store.TaskByID(ctx, id); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return apperr.Forbidden("Only admins can delete tasks")
	}
	if err := s.store.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Task deleted: %d by user %d", id, actor.ID)
	return nil
}

func (s *Service) notifyTaskAssigned(ctx context.Context, task *models.Task, actor *models.User) {
	if s.notifier == nil || task.AssignedToID == actor.ID {
		return
	}
	assignee, err := s.store.UserByID(ctx, task.AssignedToID)
	if err != nil {
		s.log.Errorf("Failed to resolve assignee %d for notification: %v", task.AssignedToID, err)
		return
	}
	if err := s.notifier.TaskAssigned(task, assignee); err != nil {
		s.log.Errorf("Failed to send assignment notification to %s: %v", assignee.Email, err)
	}
}
