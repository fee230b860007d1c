package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the schema if it does not exist. Safe to run on every
// startup.
func (r *Repository) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(50) NOT NULL UNIQUE,
			email VARCHAR(100) NOT NULL UNIQUE,
			password_hash VARCHAR(200) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'User',
			is_approved BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id BIGSERIAL PRIMARY KEY,
			title VARCHAR(200) NOT NULL,
			description TEXT NOT NULL,
			due_date DATE NOT NULL,
			priority VARCHAR(50) NOT NULL DEFAULT 'Low',
			status VARCHAR(50) NOT NULL DEFAULT 'Pending',
			created_by_id BIGINT NOT NULL REFERENCES users(id),
			assigned_to_id BIGINT NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}

// BootstrapAdmin inserts the default admin account only if no admin exists
// yet. The guard lives in the statement itself so concurrent startups cannot
// race into two admins.
func (r *Repository) BootstrapAdmin(ctx context.Context, username, email, passwordHash string) (bool, error) {
	query := `
		INSERT INTO users (username, email, password_hash, role, is_approved)
		SELECT $1, $2, $3, 'Admin', TRUE
		WHERE NOT EXISTS (SELECT 1 FROM users WHERE role = 'Admin')`
	res, err := r.db.ExecContext(ctx, query, username, email, passwordHash)
	if err != nil {
		return false, fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	return n > 0, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (class 23505).
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}
