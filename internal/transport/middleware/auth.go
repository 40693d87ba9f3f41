package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/heartmarshall/namematch-backend/internal/auth"
	"github.com/heartmarshall/namematch-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateAdminToken(token string) (string, error)
}

// RequireAdmin rejects requests without a valid admin bearer token.
// Missing or invalid tokens get 401, tokens without the admin role get 403.
func RequireAdmin(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			subject, err := validator.ValidateAdminToken(token)
			if errors.Is(err, auth.ErrNotAdmin) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithAdminSubject(r.Context(), subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
