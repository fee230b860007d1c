package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/taskflow/task-service/internal/apperr"
	"github.com/taskflow/task-service/internal/models"
	"github.com/taskflow/task-service/internal/service"
)

type contextKey struct{}

var userKey contextKey

// UserFromContext returns the authenticated user stored by AuthMiddleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// AuthMiddleware extracts the bearer token from the Authorization header,
// resolves it to a live user and stores the user in the request context.
// Requests failing any step are rejected with 401.
func AuthMiddleware(svc *service.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "Authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w, "Invalid authorization header format")
				return
			}

			user, err := svc.Authenticate(r.Context(), parts[1])
			if err != nil {
				if apperr.IsKind(err, apperr.KindUnauthenticated) {
					unauthorized(w, err.Error())
				} else {
					writeJSONError(w, http.StatusInternalServerError, "Internal server error")
				}
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	writeJSONError(w, http.StatusUnauthorized, message)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
