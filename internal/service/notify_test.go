package service

import (
	"context"
	"errors"
	"testing"

	"github.com/taskflow/task-service/internal/models"
)

type recordingNotifier struct {
	approved []int64
	assigned []int64
	err      error
}

func (n *recordingNotifier) AccountApproved(user *models.User) error {
	n.approved = append(n.approved, user.ID)
	return n.err
}

func (n *recordingNotifier) TaskAssigned(task *models.Task, assignee *models.User) error {
	n.assigned = append(n.assigned, assignee.ID)
	return n.err
}

func TestApproveNotifiesTarget(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store)
	notifier := &recordingNotifier{}
	svc.notifier = notifier

	admin := seedUser(t, store, "root", "root@example.com", "pw", models.RoleAdmin, true)
	target := seedUser(t, store, "bob", "bob@example.com", "pw", models.RoleUser, false)

	if _, err := svc.Approve(context.Background(), admin, target.ID, models.RoleUser); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if len(notifier.approved) != 1 || notifier.approved[0] != target.ID {
		t.Fatalf("expected one approval notification for %d, got %v", target.ID, notifier.approved)
	}
}

func TestCreateTaskNotifiesAssignee(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store)
	notifier := &recordingNotifier{}
	svc.notifier = notifier

	admin := seedUser(t, store, "root", "root@example.com", "pw", models.RoleAdmin, true)
	userB := seedUser(t, store, "b", "b@example.com", "pw", models.RoleUser, true)

	if _, err := svc.CreateTask(context.Background(), admin, CreateTaskInput{
		Title: "T1", Description: "d", DueDate: "2024-01-01", AssignedToID: userB.ID,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(notifier.assigned) != 1 || notifier.assigned[0] != userB.ID {
		t.Fatalf("expected one assignment notification for %d, got %v", userB.ID, notifier.assigned)
	}

	// self-assigned tasks produce no notification
	if _, err := svc.CreateTask(context.Background(), userB, CreateTaskInput{
		Title: "T2", Description: "d", DueDate: "2024-01-01",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(notifier.assigned) != 1 {
		t.Fatalf("self-assignment must not notify, got %v", notifier.assigned)
	}
}

func TestNotifierFailureDoesNotFailOperation(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store)
	svc.notifier = &recordingNotifier{err: errors.New("smtp down")}

	admin := seedUser(t, store, "root", "root@example.com", "pw", models.RoleAdmin, true)
	target := seedUser(t, store, "bob", "bob@example.com", "pw", models.RoleUser, false)

	user, err := svc.Approve(context.Background(), admin, target.ID, models.RoleUser)
	if err != nil {
		t.Fatalf("approve must succeed despite notifier failure: %v", err)
	}
	if !user.IsApproved {
		t.Fatal("approval state must persist")
	}
}
