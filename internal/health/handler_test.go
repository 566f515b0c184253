// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct {
	err error
}

func (p *pinger) Ping(_ context.Context) error {
	return p.err
}

func newTestHandler(deps map[string]error) (*Handler, chi.Router) {
	h := NewHandler()
	for name, err := range deps {
		h.AddDependency(name, &pinger{err: err})
	}

	router := chi.NewRouter()
	h.RegisterRoutes(router)
	return h, router
}

func get(router chi.Router, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLiveness(t *testing.T) {
	_, router := newTestHandler(nil)

	rec := get(router, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestReadinessAllHealthy(t *testing.T) {
	_, router := newTestHandler(map[string]error{
		"database": nil,
		"redis":    nil,
	})

	rec := get(router, "/readyz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestReadinessDegraded(t *testing.T) {
	_, router := newTestHandler(map[string]error{
		"database": nil,
		"redis":    errors.New("connection refused"),
	})

	rec := get(router, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"degraded"`)
}

func TestShutdownFailsProbes(t *testing.T) {
	h, router := newTestHandler(nil)
	h.SetShutdown(true)

	assert.Equal(t, http.StatusServiceUnavailable, get(router, "/livez").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(router, "/readyz").Code)
}
