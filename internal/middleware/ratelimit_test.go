package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/almanarhr/recruit-api/internal/config"
)

func TestRateLimitBudgetSelection(t *testing.T) {
	rl := NewRateLimitMiddleware(config.RateLimitConfig{Enabled: true}, zap.NewNop())

	tests := []struct {
		path  string
		admin bool
	}{
		{"/api/admin/workers", true},
		{"/api/admin/upload", true},
		{"/api/auth/login", true},
		{"/api/analytics/worker-data", true},
		{"/api/analytics/summary", true},
		{"/api/analytics/ranking", true},
		{"/api/analytics/comparison", true},
		{"/api/analytics/today", true},
		{"/api/analytics/save", false},
		{"/api/workers", false},
		{"/api/contact", false},
		{"/health", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.admin, rl.isAdminEndpoint(tt.path), tt.path)
	}
}

func TestRateLimitAdminBudgetIsSeparate(t *testing.T) {
	cfg := config.RateLimitConfig{
		Enabled:     true,
		PublicRPS:   0.001,
		PublicBurst: 1,
		AdminRPS:    100,
		AdminBurst:  100,
	}
	rl := NewRateLimitMiddleware(cfg, zap.NewNop())
	handler := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	// Exhaust the public budget with ingestion requests.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/analytics/save", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/analytics/save", nil))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	// The admin analytics endpoints draw from their own budget.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analytics/worker-data", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitDisabledPassesThrough(t *testing.T) {
	rl := NewRateLimitMiddleware(config.RateLimitConfig{Enabled: false}, zap.NewNop())
	handler := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 20; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/workers", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
