package notify

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/taskflow/task-service/internal/config"
	"github.com/taskflow/task-service/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// AccountApproved notifies a user that an admin approved their account.
func (s *Sender) AccountApproved(user *models.User) error {
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your account has been approved with the role %s.\n"+
			"You can now log in and start using the task manager.\n"+
			"\nBest regards,\nTask Service",
		user.Username, user.Role,
	)
	return s.send(user.Email, "Account Approved", body)
}

// TaskAssigned notifies a user that a task was assigned to them.
func (s *Sender) TaskAssigned(task *models.Task, assignee *models.User) error {
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"A new task has been assigned to you:\n"+
			"  Title:    %s\n"+
			"  Due date: %s\n"+
			"  Priority: %s\n"+
			"\nBest regards,\nTask Service",
		assignee.Username, task.Title, task.DueDate.Format(models.DueDateLayout), task.Priority,
	)
	return s.send(assignee.Email, "New Task Assigned", body)
}

// TaskDueReminder reminds an assignee about a task that is due soon or
// overdue.
func (s *Sender) TaskDueReminder(task *models.Task, assignee *models.User, overdue bool) error {
	subject := "Upcoming Task Deadline"
	line := fmt.Sprintf("Your task %q is due on %s.", task.Title, task.DueDate.Format(models.DueDateLayout))
	if overdue {
		subject = "Overdue Task Notification"
		line = fmt.Sprintf("Your task %q was due on %s and is now overdue.", task.Title, task.DueDate.Format(models.DueDateLayout))
	}
	body := fmt.Sprintf(
		"Dear %s,\n\n%s\nCurrent status: %s\n\nBest regards,\nTask Service",
		assignee.Username, line, task.Status,
	)
	return s.send(assignee.Email, subject, body)
}

func (s *Sender) send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, subject)
	return nil
}
