package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sakura-comic/backend/internal/api/response"
	"github.com/sakura-comic/backend/internal/db/models"
)

type contextKey string

const currentUserKey contextKey = "current_user"

// TokenVerifier resolves a raw token to the user it was issued for.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware rejects requests without a valid token and stores the resolved
// user in the request context.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := verifier.VerifyToken(r.Context(), tokenFromRequest(r))
			if err != nil {
				response.Error(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// tokenFromRequest reads "Authorization: Bearer <token>", falling back to ?token=.
func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, currentUserKey, u)
}

// CurrentUser returns nil outside AuthMiddleware.
func CurrentUser(r *http.Request) *models.User {
	u, ok := r.Context().Value(currentUserKey).(*models.User)
	if !ok {
		return nil
	}
	return u
}
