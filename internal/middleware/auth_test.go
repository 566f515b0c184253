// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/blog-api/internal/core"
)

type fakeVerifier struct {
	claims *Claims
	err    error
}

func (f *fakeVerifier) Verify(_ string) (*Claims, error) {
	return f.claims, f.err
}

func chainHandler(
	t *testing.T,
	mw func(http.Handler) http.Handler,
) (http.Handler, *bool) {
	t.Helper()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	return mw(next), &called
}

func TestAuthenticatorMissingToken(t *testing.T) {
	verifier := &fakeVerifier{claims: &Claims{UserID: "u1", Role: "Reader"}}
	handler, called := chainHandler(t, Authenticator(verifier))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestAuthenticatorInvalidToken(t *testing.T) {
	verifier := &fakeVerifier{err: core.ErrTokenInvalid}
	handler, called := chainHandler(t, Authenticator(verifier))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

// Expired tokens get the same 401 as invalid ones; the split is not exposed.
func TestAuthenticatorExpiredToken(t *testing.T) {
	verifier := &fakeVerifier{err: core.ErrTokenExpired}
	handler, called := chainHandler(t, Authenticator(verifier))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestAuthenticatorAttachesIdentity(t *testing.T) {
	verifier := &fakeVerifier{claims: &Claims{UserID: "u1", Role: "Author"}}

	var gotID, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetUserID(r.Context())
		gotRole = GetUserRole(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	Authenticator(verifier)(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", gotID)
	assert.Equal(t, "Author", gotRole)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		allowed    []string
		wantStatus int
	}{
		{"role in allow list", "Author", []string{"Author", "Admin"}, http.StatusOK},
		{"admin allowed", "Admin", []string{"Author", "Admin"}, http.StatusOK},
		{"role not in allow list", "Reader", []string{"Author", "Admin"}, http.StatusForbidden},
		{"no identity attached", "", []string{"Author"}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := chainHandler(t, RequireRole(tt.allowed...))

			req := httptest.NewRequest(http.MethodPost, "/posts", nil)
			if tt.role != "" {
				ctx := req.Context()
				ctx = context.WithValue(ctx, UserIDKey, "u1")
				ctx = context.WithValue(ctx, UserRoleKey, tt.role)
				req = req.WithContext(ctx)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer token", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"scheme only", "Bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, ExtractToken(req))
		})
	}
}
