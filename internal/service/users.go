package service

import (
	"context"

	"github.com/taskflow/task-service/internal/apperr"
	"github.com/taskflow/task-service/internal/models"
)

// ListUsers returns every account. Admin only.
func (s *Service) ListUsers(ctx context.Context, actor *models.User) ([]models.User, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Only admins can list users")
	}
	return s.store.ListUsers(ctx)
}

// DeleteUser removes a user and, atomically, every task they created or were
// assigned. Admin only.
func (s *Service) DeleteUser(ctx context.Context, actor *models.User, id int64) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("Only admins can delete users")
	}
	if err := s.store.DeleteUserCascade(ctx, id); err != nil {
		return err
	}
	s.log.Infof("User deleted with task cascade: %d by admin %d", id, actor.ID)
	return nil
}
