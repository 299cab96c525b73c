package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/almanarhr/recruit-api/internal/config"
	"github.com/almanarhr/recruit-api/internal/models"
)

const testSecret = "test-secret"

func testAuthConfig(enabled bool) config.AuthConfig {
	return config.AuthConfig{
		Enabled:   enabled,
		JWTSecret: testSecret,
		TokenTTL:  time.Hour,
		ProtectedPrefixes: []string{
			"/api/admin/",
			"/api/analytics/summary",
		},
	}
}

func signToken(t *testing.T, role string, ttl time.Duration, secret string) string {
	t.Helper()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAdminAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		authHeader string
		enabled    bool
		wantStatus int
	}{
		{
			name:       "public path passes without token",
			path:       "/api/workers",
			enabled:    true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "protected path without token",
			path:       "/api/admin/workers",
			enabled:    true,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "protected analytics path without token",
			path:       "/api/analytics/summary",
			enabled:    true,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			path:       "/api/admin/workers",
			authHeader: "Token abc",
			enabled:    true,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			path:       "/api/admin/workers",
			authHeader: "Bearer not-a-jwt",
			enabled:    true,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "auth disabled lets everything through",
			path:       "/api/admin/workers",
			enabled:    false,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewAdminAuthMiddleware(testAuthConfig(tt.enabled), zap.NewNop())
			handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set(AuthHeaderName, tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAdminAuthMiddlewareValidToken(t *testing.T) {
	mw := NewAdminAuthMiddleware(testAuthConfig(true), zap.NewNop())

	var gotUsername string
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUsername = GetUsername(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/workers", nil)
	req.Header.Set(AuthHeaderName, "Bearer "+signToken(t, models.RoleAdmin, time.Hour, testSecret))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", gotUsername)
}

func TestAdminAuthMiddlewareRejectsNonAdminRole(t *testing.T) {
	mw := NewAdminAuthMiddleware(testAuthConfig(true), zap.NewNop())
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/workers", nil)
	req.Header.Set(AuthHeaderName, "Bearer "+signToken(t, "viewer", time.Hour, testSecret))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	mw := NewAdminAuthMiddleware(testAuthConfig(true), zap.NewNop())
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/workers", nil)
	req.Header.Set(AuthHeaderName, "Bearer "+signToken(t, models.RoleAdmin, -time.Minute, testSecret))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	mw := NewAdminAuthMiddleware(testAuthConfig(true), zap.NewNop())
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/workers", nil)
	req.Header.Set(AuthHeaderName, "Bearer "+signToken(t, models.RoleAdmin, time.Hour, "other-secret"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
