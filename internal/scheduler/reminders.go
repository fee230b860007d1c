package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/taskflow/task-service/internal/models"
)

// Store is the subset of the repository the reminder job reads.
type Store interface {
	TasksDueBy(ctx context.Context, day time.Time) ([]models.Task, error)
	UserByID(ctx context.Context, id int64) (*models.User, error)
}

// Sender delivers the reminder emails.
type Sender interface {
	TaskDueReminder(task *models.Task, assignee *models.User, overdue bool) error
}

// Reminder periodically emails assignees about tasks due within a day or
// already overdue.
type Reminder struct {
	store  Store
	sender Sender
	log    *logrus.Logger
	cron   *cron.Cron

	now func() time.Time
}

// NewReminder creates the reminder job. It does not start it.
func NewReminder(store Store, sender Sender, log *logrus.Logger) *Reminder {
	return &Reminder{
		store:  store,
		sender: sender,
		log:    log,
		cron:   cron.New(),
		now:    time.Now,
	}
}

// Start schedules the job with the given cron spec and starts the scheduler.
func (r *Reminder) Start(spec string) error {
	if _, err := r.cron.AddFunc(spec, r.Run); err != nil {
		return err
	}
	r.cron.Start()
	r.log.Infof("Reminder job scheduled: %s", spec)
	return nil
}

// Stop stops the scheduler. Running jobs finish.
func (r *Reminder) Stop() {
	r.cron.Stop()
}

// Run performs one reminder sweep: every task due within the next 24 hours
// or earlier gets a reminder mailed to its assignee. Send failures are
// logged and do not stop the sweep.
func (r *Reminder) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := r.now()
	tasks, err := r.store.TasksDueBy(ctx, now.Add(24*time.Hour))
	if err != nil {
		r.log.Errorf("Reminder sweep failed: %v", err)
		return
	}

	today := now.Truncate(24 * time.Hour)
	for i := range tasks {
		task := &tasks[i]
		assignee, err := r.store.UserByID(ctx, task.AssignedToID)
		if err != nil {
			r.log.Errorf("Failed to resolve assignee %d for task %d: %v", task.AssignedToID, task.ID, err)
			continue
		}
		overdue := task.DueDate.Before(today)
		if err := r.sender.TaskDueReminder(task, assignee, overdue); err != nil {
			r.log.Errorf("Failed to send reminder for task %d: %v", task.ID, err)
		}
	}
	r.log.Infof("Reminder sweep completed: %d task(s)", len(tasks))
}
