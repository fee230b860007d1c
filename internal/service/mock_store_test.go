package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/taskflow/task-service/internal/apperr"
	"github.com/taskflow/task-service/internal/config"
	"github.com/taskflow/task-service/internal/models"
)

// mockStore is an in-memory Store used by the service tests. It enforces the
// same uniqueness and not-found behavior as the SQL repository.
type mockStore struct {
	users      map[int64]*models.User
	tasks      map[int64]*models.Task
	nextUserID int64
	nextTaskID int64

	// forced faults
	listTasksErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		users: map[int64]*models.User{},
		tasks: map[int64]*models.Task{},
	}
}

func (m *mockStore) CreateUser(_ context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperr.Conflict("User already exists")
		}
	}
	m.nextUserID++
	user.ID = m.nextUserID
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockStore) UserByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	cp := *u
	return &cp, nil
}

func (m *mockStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("User not found")
}

func (m *mockStore) ListUsers(_ context.Context) ([]models.User, error) {
	out := []models.User{}
	for id := int64(1); id <= m.nextUserID; id++ {
		if u, ok := m.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockStore) UpdateUser(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return apperr.NotFound("User not found")
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockStore) DeleteUserCascade(_ context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return apperr.NotFound("User not found")
	}
	for taskID, t := range m.tasks {
		if t.CreatedByID == id || t.AssignedToID == id {
			delete(m.tasks, taskID)
		}
	}
	delete(m.users, id)
	return nil
}

func (m *mockStore) CreateTask(_ context.Context, task *models.Task) error {
	m.nextTaskID++
	task.ID = m.nextTaskID
	cp := *task
	m.tasks[task.ID] = &cp
	return nil
}

// project fills the creator/assignee summaries the way the repository's join
// does.
func (m *mockStore) project(task models.Task) models.Task {
	if u, ok := m.users[task.CreatedByID]; ok {
		task.CreatedBy = u.Summary()
	}
	if u, ok := m.users[task.AssignedToID]; ok {
		task.AssignedTo = u.Summary()
	}
	return task
}

func (m *mockStore) TaskByID(_ context.Context, id int64) (*models.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, apperr.NotFound("Task not found")
	}
	cp := m.project(*t)
	return &cp, nil
}

func (m *mockStore) ListTasks(_ context.Context) ([]models.Task, error) {
	if m.listTasksErr != nil {
		return nil, m.listTasksErr
	}
	out := []models.Task{}
	for id := int64(1); id <= m.nextTaskID; id++ {
		if t, ok := m.tasks[id]; ok {
			out = append(out, m.project(*t))
		}
	}
	return out, nil
}

func (m *mockStore) UpdateTask(_ context.Context, task *models.Task) error {
	if _, ok := m.tasks[task.ID]; !ok {
		return apperr.NotFound("Task not found")
	}
	cp := *task
	m.tasks[task.ID] = &cp
	return nil
}

func (m *mockStore) DeleteTask(_ context.Context, id int64) error {
	if _, ok := m.tasks[id]; !ok {
		return apperr.NotFound("Task not found")
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockStore) TasksDueBy(_ context.Context, day time.Time) ([]models.Task, error) {
	out := []models.Task{}
	for id := int64(1); id <= m.nextTaskID; id++ {
		if t, ok := m.tasks[id]; ok && !t.DueDate.After(day) {
			out = append(out, m.project(*t))
		}
	}
	return out, nil
}

var _ Store = (*mockStore)(nil)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}
}

func newTestService(store Store) *Service {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewService(store, log, testConfig(), nil)
}
