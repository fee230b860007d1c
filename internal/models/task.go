package models

import "time"

// Default labels applied when a task is created without them.
const (
	DefaultPriority = "Low"
	DefaultStatus   = "Pending"
)

// DueDateLayout is the wire format for task due dates.
const DueDateLayout = "2006-01-02"

// Task represents a task row together with its creator/assignee projections.
// CreatedBy and AssignedTo are filled by the repository's join; they are nil
// only if the row was built without projections.
type Task struct {
	ID           int64        `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	DueDate      time.Time    `json:"-"`
	Priority     string       `json:"priority"`
	Status       string       `json:"status"`
	CreatedByID  int64        `json:"created_by_id"`
	AssignedToID int64        `json:"assigned_to_id"`
	CreatedBy    *UserSummary `json:"created_by"`
	AssignedTo   *UserSummary `json:"assigned_to"`
	CreatedAt    time.Time    `json:"-"`
	UpdatedAt    time.Time    `json:"-"`
}
