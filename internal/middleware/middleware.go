package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/silsilah/bloglist-service/internal/models"
	"github.com/silsilah/bloglist-service/internal/service"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserID returns the authenticated user id stored in the request context,
// or an empty string for anonymous requests
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID returns a context carrying the authenticated user id
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// BearerToken extracts the token from the Authorization header, or returns
// an empty string when the header is absent or not a bearer scheme
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// Auth rejects requests without a valid session token and stores the bound
// user id in the request context. Mutating endpoints sit behind this, so an
// invalid token short-circuits before any storage call.
func Auth(svc *service.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				unauthorized(w)
				return
			}
			userID, err := svc.Validate(token)
			if err != nil {
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": models.ErrTokenInvalid.Error()})
}
