package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/taskflow/task-service/internal/apperr"
	"github.com/taskflow/task-service/internal/models"
)

// taskColumns selects task rows joined with their creator and assignee
// projections. The joins are explicit: the store always returns fully
// resolved projections, never lazy references.
const taskColumns = `
	t.id, t.title, t.description, t.due_date, t.priority, t.status,
	t.created_by_id, t.assigned_to_id, t.created_at, t.updated_at,
	c.id, c.username, c.role,
	a.id, a.username, a.role`

const taskJoins = `
	FROM tasks t
	JOIN users c ON c.id = t.created_by_id
	JOIN users a ON a.id = t.assigned_to_id`

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	task := &models.Task{
		CreatedBy:  &models.UserSummary{},
		AssignedTo: &models.UserSummary{},
	}
	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.DueDate, &task.Priority, &task.Status,
		&task.CreatedByID, &task.AssignedToID, &task.CreatedAt, &task.UpdatedAt,
		&task.CreatedBy.ID, &task.CreatedBy.Username, &task.CreatedBy.Role,
		&task.AssignedTo.ID, &task.AssignedTo.Username, &task.AssignedTo.Role,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// CreateTask creates a new task in the database
func (r *Repository) CreateTask(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (title, description, due_date, priority, status, created_by_id, assigned_to_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.DueDate, task.Priority, task.Status,
		task.CreatedByID, task.AssignedToID).
		Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// TaskByID retrieves a task with its creator/assignee projections
func (r *Repository) TaskByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + taskJoins + ` WHERE t.id = $1`
	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListTasks retrieves all tasks with projections, ordered by id. Visibility
// filtering is the service's concern, not the store's.
func (r *Repository) ListTasks(ctx context.Context) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + taskJoins + ` ORDER BY t.id`
	return r.queryTasks(ctx, query)
}

// TasksDueBy retrieves tasks whose due date is on or before the given day,
// for the reminder job.
func (r *Repository) TasksDueBy(ctx context.Context, day time.Time) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + taskJoins + ` WHERE t.due_date <= $1 ORDER BY t.due_date, t.id`
	return r.queryTasks(ctx, query, day)
}

func (r *Repository) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to list tasks: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask persists every mutable field of the task
func (r *Repository) UpdateTask(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, priority = $4,
		    status = $5, assigned_to_id = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.DueDate, task.Priority,
		task.Status, task.AssignedToID, task.ID).
		Scan(&task.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("Task not found")
	}
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// DeleteTask removes a task by id
func (r *Repository) DeleteTask(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("Task not found")
	}
	return nil
}
