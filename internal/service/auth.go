package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/task-service/internal/apperr"
	"github.com/taskflow/task-service/internal/models"
)

// LoginResult is the deliberately minimal login response: the token plus the
// role and approval flag, never id/username/email.
type LoginResult struct {
	AccessToken string
	Role        string
	IsApproved  bool
}

// Register creates a new unapproved user with a hashed password. A requested
// role is accepted but never "Admin"; elevation is an admin-only action.
func (s *Service) Register(ctx context.Context, username, email, password, requestedRole string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, apperr.BadRequest("username, email and password are required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := models.RoleUser
	if requestedRole != "" && requestedRole != models.RoleAdmin {
		role = requestedRole
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		IsApproved:   false,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a signed bearer token. Non-admin
// accounts must be approved before they can log in.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, apperr.BadRequest("email and password are required")
	}

	user, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.InvalidCredentials("Invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.InvalidCredentials("Invalid credentials")
	}

	if !user.IsAdmin() && !user.IsApproved {
		return nil, apperr.NotApproved("User not approved by admin")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return &LoginResult{AccessToken: token, Role: user.Role, IsApproved: user.IsApproved}, nil
}

// Authenticate verifies a bearer token and resolves it to a live user. Any
// token failure, and a token whose subject no longer exists, reports
// Unauthenticated.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	if tokenString == "" {
		return nil, apperr.Unauthenticated("Missing token")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, apperr.Unauthenticated("Invalid or expired token")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, apperr.Unauthenticated("Invalid token subject")
	}

	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Unauthenticated("Unknown user")
		}
		return nil, err
	}
	return user, nil
}

// Approve assigns a role to a user and marks the account approved. Only
// admins may approve; re-approving an approved user is not an error.
func (s *Service) Approve(ctx context.Context, actor *models.User, targetID int64, newRole string) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Only admins can approve users")
	}
	if newRole == "" {
		return nil, apperr.BadRequest("Role is required")
	}

	user, err := s.store.UserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.Role = newRole
	user.IsApproved = true
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User approved: %s as %s", user.Username, newRole)
	s.notifyAccountApproved(user)
	return user, nil
}

func (s *Service) issueToken(user *models.User) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
	})
	return token.SignedString([]byte(s.config.JWTSecret))
}

func (s *Service) notifyAccountApproved(user *models.User) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.AccountApproved(user); err != nil {
		s.log.Errorf("Failed to send approval notification to %s: %v", user.Email, err)
	}
}
