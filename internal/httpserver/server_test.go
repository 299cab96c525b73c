package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/almanarhr/recruit-api/internal/config"
	"github.com/almanarhr/recruit-api/internal/database"
	"github.com/almanarhr/recruit-api/internal/models"
	"github.com/almanarhr/recruit-api/internal/recruit"
)

func newTestServer(t *testing.T) (http.Handler, *recruit.AuthService) {
	t.Helper()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			Enabled:       true,
			JWTSecret:     "test-secret",
			TokenTTL:      time.Hour,
			AdminUsername: "admin",
			AdminPassword: "hunter2",
		},
	}
	handler, authSvc := NewServer(&Dependencies{
		Config: cfg,
		Logger: zap.NewNop(),
	})
	require.NoError(t, authSvc.EnsureAdmin(context.Background()))
	return handler, authSvc
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestHealth(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "ok", body.Status)
	assert.Empty(t, body.Checks)
}

func TestHealthReportsBackendFailure(t *testing.T) {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			Enabled:   true,
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
		},
	}
	handler, _ := NewServer(&Dependencies{
		Config: cfg,
		Logger: zap.NewNop(),
		Redis: &database.RedisDB{
			Client: redis.NewClient(&redis.Options{
				Addr:        "127.0.0.1:1",
				DialTimeout: 100 * time.Millisecond,
			}),
		},
	})

	rec := doJSON(t, handler, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "degraded", body.Status)
	assert.NotEqual(t, "ok", body.Checks["redis"])
	assert.NotEmpty(t, body.Checks["redis"])
}

func TestAnalyticsSaveSingleEvent(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/analytics/save", models.EventInput{
		UserType:   "GUEST",
		WorkerID:   "w1",
		ActionType: "VIEW",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Analytics event(s) saved", body["message"])
}

func TestAnalyticsSaveBatch(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/analytics/save", []models.EventInput{
		{UserType: "GUEST", WorkerID: "w1", ActionType: "VIEW"},
		{UserType: "CLIENT", UserID: "u1", WorkerID: "w1", ActionType: "CALL"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAnalyticsSaveRejectsInvalidBatch(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/analytics/save", []models.EventInput{
		{UserType: "GUEST", WorkerID: "w1", ActionType: "VIEW"},
		{UserType: "GUEST", WorkerID: "", ActionType: "CALL"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Missing required fields in one or more events", body["message"])
}

func TestAnalyticsSaveRejectsMalformedJSON(t *testing.T) {
	handler, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analytics/save", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyticsSaveMethodNotAllowed(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/analytics/save", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestWorkerLifecycleAndAnalytics(t *testing.T) {
	handler, _ := newTestServer(t)

	// Create a worker through the admin API.
	rec := doJSON(t, handler, http.MethodPost, "/api/admin/workers", models.Worker{
		NameEng:     "Amal Hassan",
		Profession:  "Nanny",
		Nationality: "PH",
		Gender:      "female",
		Available:   true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var created struct {
		Success bool          `json:"success"`
		Data    models.Worker `json:"data"`
	}
	decodeBody(t, rec, &created)
	require.True(t, created.Success)
	require.NotEmpty(t, created.Data.ID)
	workerID := created.Data.ID

	// It shows up in the public catalogue.
	rec = doJSON(t, handler, http.MethodGet, "/api/workers?profession=Nanny", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page recruit.WorkerPage
	decodeBody(t, rec, &page)
	require.Len(t, page.Workers, 1)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, models.DefaultWorkerPageSize, page.Limit)

	// Record some interactions against it.
	rec = doJSON(t, handler, http.MethodPost, "/api/analytics/save", []models.EventInput{
		{UserType: "GUEST", WorkerID: workerID, ActionType: "VIEW"},
		{UserType: "GUEST", WorkerID: workerID, ActionType: "VIEW"},
		{UserType: "GUEST", WorkerID: workerID, ActionType: "VIEW"},
		{UserType: "GUEST", WorkerID: workerID, ActionType: "CALL"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Aggregated stats reflect the events.
	rec = doJSON(t, handler, http.MethodGet, "/api/analytics/worker-data", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summaries []struct {
		WorkerID string                      `json:"workerId"`
		Stats    map[models.ActionType]int64 `json:"stats"`
	}
	decodeBody(t, rec, &summaries)
	require.Len(t, summaries, 1)
	assert.Equal(t, workerID, summaries[0].WorkerID)
	assert.Equal(t, int64(3), summaries[0].Stats[models.ActionView])
	assert.Equal(t, int64(1), summaries[0].Stats[models.ActionCall])

	// Delete the worker; its events drop out of the report.
	rec = doJSON(t, handler, http.MethodDelete, "/api/admin/workers/"+workerID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/analytics/worker-data", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summaries = nil
	decodeBody(t, rec, &summaries)
	assert.Empty(t, summaries)
}

func TestAdminWorkerDetailIncludesInteractions(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/admin/workers", models.Worker{
		NameEng:     "Dana Ali",
		Profession:  "Cook",
		Nationality: "ID",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var created struct {
		Data models.Worker `json:"data"`
	}
	decodeBody(t, rec, &created)
	workerID := created.Data.ID

	rec = doJSON(t, handler, http.MethodPost, "/api/analytics/save", []models.EventInput{
		{UserType: "GUEST", WorkerID: workerID, ActionType: "VIEW"},
		{UserType: "GUEST", WorkerID: workerID, ActionType: "CALL"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/admin/workers/"+workerID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail struct {
		Worker       models.Worker `json:"worker"`
		Interactions int64         `json:"interactions"`
	}
	decodeBody(t, rec, &detail)
	assert.Equal(t, workerID, detail.Worker.ID)
	assert.Equal(t, int64(2), detail.Interactions)
}

func TestServerErrorIncludesDetail(t *testing.T) {
	s := &Server{logger: zap.NewNop()}

	rec := httptest.NewRecorder()
	s.serverError(rec, "failed to save events", errors.New("connection refused"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "failed to save events", body["message"])
	assert.Equal(t, "connection refused", body["error"])
}

func TestAdminWorkerValidation(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/admin/workers", models.Worker{
		NameEng: "No Profession",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin",
		"password": "hunter2",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
			Role  string `json:"role"`
		} `json:"data"`
	}
	decodeBody(t, rec, &body)
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Data.Token)
	assert.Equal(t, models.RoleAdmin, body.Data.Role)

	rec = doJSON(t, handler, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestContactEndpoint(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/contact", models.ContactMessage{
		Name:    "Visitor",
		Phone:   "+96650000000",
		Message: "Looking for a driver",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Missing reply channel is a client error.
	rec = doJSON(t, handler, http.MethodPost, "/api/contact", models.ContactMessage{
		Name:    "Visitor",
		Message: "no contact info",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The lead is visible through the admin list.
	rec = doJSON(t, handler, http.MethodGet, "/api/admin/contacts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.ContactMessage
	decodeBody(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Visitor", list[0].Name)
}

func TestChatEndpoint(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/chat", models.ChatTranscript{
		VisitorName: "Visitor",
		Messages: []models.ChatMessage{
			{Sender: "visitor", Text: "hello", SentAt: time.Now().UTC()},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/chat", models.ChatTranscript{VisitorName: "Empty"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTestimonialsPublicOnlyApproved(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/admin/testimonials", models.Testimonial{
		Author:   "Happy Client",
		Quote:    "Great service",
		Approved: true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/admin/testimonials", models.Testimonial{
		Author: "Pending Client",
		Quote:  "Not yet reviewed",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/testimonials", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var public []models.Testimonial
	decodeBody(t, rec, &public)
	require.Len(t, public, 1)
	assert.Equal(t, "Happy Client", public[0].Author)

	rec = doJSON(t, handler, http.MethodGet, "/api/admin/testimonials", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []models.Testimonial
	decodeBody(t, rec, &all)
	assert.Len(t, all, 2)
}

func TestAnalyticsSummaryAndRanking(t *testing.T) {
	handler, _ := newTestServer(t)

	// Two workers with different interaction volumes.
	var ids []string
	for _, name := range []string{"Amal", "Basim"} {
		rec := doJSON(t, handler, http.MethodPost, "/api/admin/workers", models.Worker{
			NameEng:     name,
			Profession:  "Nanny",
			Nationality: "PH",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		var created struct {
			Data models.Worker `json:"data"`
		}
		decodeBody(t, rec, &created)
		ids = append(ids, created.Data.ID)
	}

	rec := doJSON(t, handler, http.MethodPost, "/api/analytics/save", []models.EventInput{
		{UserType: "GUEST", WorkerID: ids[0], ActionType: "VIEW"},
		{UserType: "GUEST", WorkerID: ids[1], ActionType: "VIEW"},
		{UserType: "GUEST", WorkerID: ids[1], ActionType: "WHATSAPP"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/analytics/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var totals struct {
		Views             int64 `json:"views"`
		Whatsapp          int64 `json:"whatsapp"`
		TotalInteractions int64 `json:"totalInteractions"`
		TotalProfiles     int64 `json:"totalProfiles"`
	}
	decodeBody(t, rec, &totals)
	assert.Equal(t, int64(2), totals.Views)
	assert.Equal(t, int64(1), totals.Whatsapp)
	assert.Equal(t, int64(3), totals.TotalInteractions)
	assert.Equal(t, int64(2), totals.TotalProfiles)

	rec = doJSON(t, handler, http.MethodGet, "/api/analytics/ranking", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ranking struct {
		Page struct {
			Rows []struct {
				ID    string `json:"id"`
				Total int64  `json:"total"`
			} `json:"rows"`
		} `json:"page"`
		TopPerformers []struct {
			ID string `json:"id"`
		} `json:"topPerformers"`
	}
	decodeBody(t, rec, &ranking)
	require.Len(t, ranking.Page.Rows, 2)
	assert.Equal(t, ids[1], ranking.Page.Rows[0].ID)
	assert.Equal(t, int64(2), ranking.Page.Rows[0].Total)
	require.NotEmpty(t, ranking.TopPerformers)
	assert.Equal(t, ids[1], ranking.TopPerformers[0].ID)
}

func TestWorkerByIDNotFound(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/workers/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
