package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/namematch-backend/internal/auth"
	"github.com/heartmarshall/namematch-backend/pkg/ctxutil"
)

//go:generate moq -out token_validator_mock_test.go -pkg middleware . tokenValidator

func newValidator() *tokenValidatorMock {
	return &tokenValidatorMock{
		ValidateAdminTokenFunc: func(token string) (string, error) {
			switch token {
			case "valid-token":
				return "ops@example.org", nil
			case "viewer-token":
				return "", auth.ErrNotAdmin
			default:
				return "", errors.New("invalid token")
			}
		},
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		header        string
		wantStatus    int
		wantCalled    bool
		wantValidated int
	}{
		{"valid token", "Bearer valid-token", http.StatusOK, true, 1},
		{"invalid token", "Bearer bad-token", http.StatusUnauthorized, false, 1},
		{"not admin", "Bearer viewer-token", http.StatusForbidden, false, 1},
		{"no header", "", http.StatusUnauthorized, false, 0},
		{"basic scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			validator := newValidator()
			called := false
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				subject, ok := ctxutil.AdminSubjectFromCtx(r.Context())
				assert.True(t, ok)
				assert.Equal(t, "ops@example.org", subject)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/admin/index/reload", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			RequireAdmin(validator)(handler).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			assert.Len(t, validator.ValidateAdminTokenCalls(), tt.wantValidated)
		})
	}
}

func TestRequireAdmin_SetsAuthenticateHeader(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/admin/index/stats", nil)
	rec := httptest.NewRecorder()

	RequireAdmin(newValidator())(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, `Bearer realm="admin"`, rec.Header().Get("WWW-Authenticate"))
}

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	assert.Equal(t, "abc.def.ghi", extractBearerToken(req))

	req.Header.Set("Authorization", "bearer abc")
	assert.Empty(t, extractBearerToken(req))
}
