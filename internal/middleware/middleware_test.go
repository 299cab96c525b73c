package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/almanarhr/recruit-api/internal/metrics"
)

func TestLoggingMiddlewareRecordsMetrics(t *testing.T) {
	m := metrics.NewMetrics("test")
	lm := NewLoggingMiddleware(zap.NewNop())
	lm.SetMetrics(m)

	handler := lm.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/contact", nil))
	}

	got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST", "/api/contact", "201"))
	assert.Equal(t, 3.0, got)
}

func TestLoggingMiddlewareWithoutMetrics(t *testing.T) {
	lm := NewLoggingMiddleware(zap.NewNop())
	handler := lm.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/workers", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecoveryMiddlewareCatchesPanic(t *testing.T) {
	rm := NewRecoveryMiddleware(zap.NewNop())
	handler := rm.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/workers", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}
