package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/task-service/internal/config"
	"github.com/taskflow/task-service/internal/handler"
	"github.com/taskflow/task-service/internal/middleware"
	"github.com/taskflow/task-service/internal/notify"
	"github.com/taskflow/task-service/internal/repository"
	"github.com/taskflow/task-service/internal/scheduler"
	"github.com/taskflow/task-service/internal/service"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize store, schema and the bootstrap admin
	repo := repository.NewRepository(db)
	ctx := context.Background()
	if err := repo.Migrate(ctx); err != nil {
		logger.Fatalf("Failed to migrate schema: %v", err)
	}
	adminHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatalf("Failed to hash admin password: %v", err)
	}
	created, err := repo.BootstrapAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, string(adminHash))
	if err != nil {
		logger.Fatalf("Failed to bootstrap admin: %v", err)
	}
	if created {
		logger.Warnf("Default admin account created (%s); rotate its credentials", cfg.AdminEmail)
	}

	// Initialize layers
	var notifier service.Notifier
	var sender *notify.Sender
	if cfg.NotificationsEnabled() {
		sender = notify.NewSender(cfg, logger)
		notifier = sender
	}
	svc := service.NewService(repo, logger, cfg, notifier)
	h := handler.NewHandler(svc, logger)

	// Due-date reminders run only when email is configured
	if sender != nil {
		reminder := scheduler.NewReminder(repo, sender, logger)
		if err := reminder.Start(cfg.ReminderCron); err != nil {
			logger.Fatalf("Failed to schedule reminders: %v", err)
		}
		defer reminder.Stop()
	}

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/", h.Health).Methods("GET")
	r.HandleFunc("/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(svc))
	authRouter.HandleFunc("/auth/approve/{userId}", h.Approve).Methods("PUT")
	authRouter.HandleFunc("/users/me", h.Profile).Methods("GET")
	authRouter.HandleFunc("/users", h.ListUsers).Methods("GET")
	authRouter.HandleFunc("/users/{id}", h.DeleteUser).Methods("DELETE")
	authRouter.HandleFunc("/tasks", h.CreateTask).Methods("POST")
	authRouter.HandleFunc("/tasks", h.ListTasks).Methods("GET")
	authRouter.HandleFunc("/tasks/{id}", h.GetTask).Methods("GET")
	authRouter.HandleFunc("/tasks/{id}", h.UpdateTask).Methods("PUT")
	authRouter.HandleFunc("/tasks/{id}", h.DeleteTask).Methods("DELETE")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
