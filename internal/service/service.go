package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/taskflow/task-service/internal/config"
	"github.com/taskflow/task-service/internal/models"
)

// Store is the persistence surface the service depends on. It is satisfied
// by *repository.Repository and mocked in tests.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByID(ctx context.Context, id int64) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUserCascade(ctx context.Context, id int64) error

	CreateTask(ctx context.Context, task *models.Task) error
	TaskByID(ctx context.Context, id int64) (*models.Task, error)
	ListTasks(ctx context.Context) ([]models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, id int64) error
	TasksDueBy(ctx context.Context, day time.Time) ([]models.Task, error)
}

// Notifier delivers out-of-band notifications. Delivery failures never fail
// the operation that triggered them.
type Notifier interface {
	AccountApproved(user *models.User) error
	TaskAssigned(task *models.Task, assignee *models.User) error
}

// Service handles business logic
type Service struct {
	store    Store
	log      *logrus.Logger
	config   *config.Config
	notifier Notifier

	// now is swappable for tests
	now func() time.Time
}

// NewService initializes a new service. notifier may be nil when
// notifications are disabled.
func NewService(store Store, log *logrus.Logger, cfg *config.Config, notifier Notifier) *Service {
	return &Service{
		store:    store,
		log:      log,
		config:   cfg,
		notifier: notifier,
		now:      time.Now,
	}
}
