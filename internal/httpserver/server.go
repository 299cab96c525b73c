package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/almanarhr/recruit-api/internal/analytics"
	"github.com/almanarhr/recruit-api/internal/config"
	"github.com/almanarhr/recruit-api/internal/database"
	"github.com/almanarhr/recruit-api/internal/geo"
	"github.com/almanarhr/recruit-api/internal/metrics"
	"github.com/almanarhr/recruit-api/internal/models"
	"github.com/almanarhr/recruit-api/internal/recruit"
	"github.com/almanarhr/recruit-api/internal/storage"
)

// Dependencies holds all external dependencies for the server.
type Dependencies struct {
	DB         *database.PostgresDB
	Redis      *database.RedisDB
	ClickHouse *database.ClickHouseDB
	Geo        *geo.Provider
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
}

// Server wraps HTTP handlers and the recruitment services.
type Server struct {
	analyticsService *recruit.AnalyticsService
	workerService    *recruit.WorkerService
	contentService   *recruit.ContentService
	contactService   *recruit.ContactService
	authService      *recruit.AuthService
	db               *database.PostgresDB
	redis            *database.RedisDB
	clickhouse       *database.ClickHouseDB
	logger           *zap.Logger
	config           *config.Config
	metrics          *metrics.Metrics
}

// NewServer constructs a new http.Handler with all routes registered.
// The returned AuthService is exposed so main can seed the admin account.
func NewServer(deps *Dependencies) (http.Handler, *recruit.AuthService) {
	// Initialize repositories
	var (
		eventStore      storage.EventStore
		workerRepo      storage.WorkerRepo
		galleryRepo     storage.GalleryRepo
		clientRepo      storage.ClientLogoRepo
		testimonialRepo storage.TestimonialRepo
		teamRepo        storage.TeamRepo
		contactRepo     storage.ContactRepo
		chatRepo        storage.ChatRepo
		adminRepo       storage.AdminRepo
	)

	if deps.DB != nil {
		workerRepo = storage.NewPostgresWorkerRepo(deps.DB.Pool)
		galleryRepo = storage.NewPostgresGalleryRepo(deps.DB.Pool)
		clientRepo = storage.NewPostgresClientLogoRepo(deps.DB.Pool)
		testimonialRepo = storage.NewPostgresTestimonialRepo(deps.DB.Pool)
		teamRepo = storage.NewPostgresTeamRepo(deps.DB.Pool)
		contactRepo = storage.NewPostgresContactRepo(deps.DB.Pool)
		chatRepo = storage.NewPostgresChatRepo(deps.DB.Pool)
		adminRepo = storage.NewPostgresAdminRepo(deps.DB.Pool)
	} else {
		workerRepo = storage.NewInMemoryWorkerRepo()
		galleryRepo = storage.NewInMemoryGalleryRepo()
		clientRepo = storage.NewInMemoryClientLogoRepo()
		testimonialRepo = storage.NewInMemoryTestimonialRepo()
		teamRepo = storage.NewInMemoryTeamRepo()
		contactRepo = storage.NewInMemoryContactRepo()
		chatRepo = storage.NewInMemoryChatRepo()
		adminRepo = storage.NewInMemoryAdminRepo()
	}

	// The event store prefers the columnar backend when configured.
	switch {
	case deps.ClickHouse != nil:
		eventStore = storage.NewClickHouseEventStore(deps.ClickHouse.Conn)
	case deps.DB != nil:
		eventStore = storage.NewPostgresEventStore(deps.DB.Pool)
	default:
		eventStore = storage.NewInMemoryEventStore()
	}

	// Initialize services
	analyticsSvc := recruit.NewAnalyticsService(eventStore, workerRepo, deps.Redis, deps.Geo, deps.Metrics, deps.Logger)
	workerSvc := recruit.NewWorkerService(workerRepo)
	contentSvc := recruit.NewContentService(galleryRepo, clientRepo, testimonialRepo, teamRepo)
	contactSvc := recruit.NewContactService(contactRepo, chatRepo, deps.Metrics)
	authSvc := recruit.NewAuthService(adminRepo, deps.Config.Auth, deps.Logger)

	s := &Server{
		analyticsService: analyticsSvc,
		workerService:    workerSvc,
		contentService:   contentSvc,
		contactService:   contactSvc,
		authService:      authSvc,
		db:               deps.DB,
		redis:            deps.Redis,
		clickhouse:       deps.ClickHouse,
		logger:           deps.Logger,
		config:           deps.Config,
		metrics:          deps.Metrics,
	}

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", s.handleHealth)

	// Prometheus metrics
	if deps.Config.Metrics.Enabled {
		mux.Handle(deps.Config.Metrics.Path, metrics.Handler())
	}

	// Analytics
	mux.HandleFunc("/api/analytics/save", s.handleAnalyticsSave)
	mux.HandleFunc("/api/analytics/worker-data", s.handleWorkerData)
	mux.HandleFunc("/api/analytics/summary", s.handleAnalyticsSummary)
	mux.HandleFunc("/api/analytics/ranking", s.handleAnalyticsRanking)
	mux.HandleFunc("/api/analytics/comparison", s.handleAnalyticsComparison)
	mux.HandleFunc("/api/analytics/today", s.handleAnalyticsToday)

	// Auth
	mux.HandleFunc("/api/auth/login", s.handleLogin)

	// Public site content
	mux.HandleFunc("/api/workers", s.handleWorkers)
	mux.HandleFunc("/api/workers/", s.handleWorkerByID)
	mux.HandleFunc("/api/gallery", s.handleGallery)
	mux.HandleFunc("/api/clients", s.handleClients)
	mux.HandleFunc("/api/testimonials", s.handleTestimonials)
	mux.HandleFunc("/api/team", s.handleTeam)

	// Leads
	mux.HandleFunc("/api/contact", s.handleContact)
	mux.HandleFunc("/api/chat", s.handleChat)

	// Admin CRUD
	mux.HandleFunc("/api/admin/workers", s.handleAdminWorkers)
	mux.HandleFunc("/api/admin/workers/", s.handleAdminWorkerByID)
	mux.HandleFunc("/api/admin/gallery", s.handleAdminGallery)
	mux.HandleFunc("/api/admin/gallery/", s.handleAdminGalleryByID)
	mux.HandleFunc("/api/admin/clients", s.handleAdminClients)
	mux.HandleFunc("/api/admin/clients/", s.handleAdminClientByID)
	mux.HandleFunc("/api/admin/testimonials", s.handleAdminTestimonials)
	mux.HandleFunc("/api/admin/testimonials/", s.handleAdminTestimonialByID)
	mux.HandleFunc("/api/admin/team", s.handleAdminTeam)
	mux.HandleFunc("/api/admin/team/", s.handleAdminTeamByID)
	mux.HandleFunc("/api/admin/contacts", s.handleAdminContacts)
	mux.HandleFunc("/api/admin/contacts/", s.handleAdminContactByID)
	mux.HandleFunc("/api/admin/chats", s.handleAdminChats)
	mux.HandleFunc("/api/admin/chats/", s.handleAdminChatByID)
	mux.HandleFunc("/api/admin/upload", s.handleUpload)

	// Uploaded assets
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	return mux, authSvc
}

// ---- Health Check ----

// handleHealth pings every configured backend and reports per-backend status.
// Backends that were not configured are omitted from the report.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string)
	healthy := true
	check := func(name string, ping func(context.Context) error) {
		if err := ping(ctx); err != nil {
			checks[name] = err.Error()
			healthy = false
			return
		}
		checks[name] = "ok"
	}

	if s.db != nil {
		check("postgres", s.db.Health)
	}
	if s.redis != nil {
		check("redis", s.redis.Health)
	}
	if s.clickhouse != nil {
		check("clickhouse", s.clickhouse.Health)
	}

	status := "ok"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}

// ---- Analytics ----

// handleAnalyticsSave ingests one event or an array of events. The whole
// batch is rejected when any element is missing a required field.
func (s *Server) handleAnalyticsSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.errorResponse(w, "failed to read body", http.StatusBadRequest)
		return
	}

	inputs, err := decodeEventInputs(body)
	if err != nil {
		s.errorResponse(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := s.analyticsService.Ingest(r.Context(), inputs, clientIP(r)); err != nil {
		if errors.Is(err, recruit.ErrMissingFields) {
			s.errorResponse(w, "Missing required fields in one or more events", http.StatusBadRequest)
			return
		}
		s.serverError(w, "failed to save events", err)
		return
	}

	s.jsonResponse(w, map[string]interface{}{
		"success": true,
		"message": "Analytics event(s) saved",
	})
}

// decodeEventInputs accepts either a single event object or an array.
func decodeEventInputs(body []byte) ([]models.EventInput, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var inputs []models.EventInput
		if err := json.Unmarshal(body, &inputs); err != nil {
			return nil, err
		}
		return inputs, nil
	}
	var single models.EventInput
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, err
	}
	return []models.EventInput{single}, nil
}

func (s *Server) handleWorkerData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summaries, err := s.analyticsService.WorkerData(r.Context())
	if err != nil {
		s.serverError(w, "failed to load worker data", err)
		return
	}

	s.jsonResponse(w, summaries)
}

func (s *Server) handleAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	totals, err := s.analyticsService.Summary(r.Context())
	if err != nil {
		s.serverError(w, "failed to compute summary", err)
		return
	}

	s.jsonResponse(w, totals)
}

func (s *Server) handleAnalyticsRanking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pageIndex := queryInt(r, "page", 0)
	page, top, err := s.analyticsService.Ranking(r.Context(), pageIndex)
	if err != nil {
		s.serverError(w, "failed to compute ranking", err)
		return
	}

	s.jsonResponse(w, map[string]interface{}{
		"page":          page,
		"topPerformers": top,
	})
}

func (s *Server) handleAnalyticsComparison(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	state := analytics.ViewState{
		SortKey:       q.Get("sort"),
		SortDirection: q.Get("dir"),
		PageIndex:     queryInt(r, "page", 0),
		SearchTerm:    q.Get("search"),
	}

	page, err := s.analyticsService.Comparison(r.Context(), state)
	if err != nil {
		s.serverError(w, "failed to compute comparison", err)
		return
	}

	s.jsonResponse(w, page)
}

func (s *Server) handleAnalyticsToday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	counts, err := s.analyticsService.Today(r.Context())
	if err != nil {
		s.serverError(w, "failed to read daily counters", err)
		return
	}

	s.jsonResponse(w, counts)
}

// ---- Auth ----

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		s.errorResponse(w, "invalid json", http.StatusBadRequest)
		return
	}

	result, err := s.authService.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, recruit.ErrInvalidCredentials) {
			s.errorResponse(w, "invalid username or password", http.StatusUnauthorized)
			return
		}
		s.serverError(w, "internal error", err)
		return
	}

	s.jsonResponse(w, map[string]interface{}{
		"success": true,
		"message": "Logged in",
		"data":    result,
	})
}

// ---- Public Workers ----

func (s *Server) handleWorkers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	filter := models.WorkerFilter{
		Profession:  q.Get("profession"),
		Nationality: q.Get("nationality"),
		Gender:      q.Get("gender"),
		Search:      q.Get("search"),
		Page:        queryInt(r, "page", 1),
		Limit:       queryInt(r, "limit", 0),
	}
	if avail := q.Get("available"); avail != "" {
		b := avail == "true" || avail == "1"
		filter.Available = &b
	}

	page, err := s.workerService.List(r.Context(), filter)
	if err != nil {
		s.serverError(w, "failed to list workers", err)
		return
	}

	s.jsonResponse(w, page)
}

func (s *Server) handleWorkerByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/workers/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	worker, err := s.workerService.Get(r.Context(), id)
	if err != nil {
		s.serverError(w, "failed to get worker", err)
		return
	}
	if worker == nil {
		http.NotFound(w, r)
		return
	}

	s.jsonResponse(w, worker)
}

// ---- Public Site Content ----

func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	items, err := s.contentService.ListGallery(r.Context())
	if err != nil {
		s.serverError(w, "failed to list gallery", err)
		return
	}
	s.jsonResponse(w, items)
}

func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	logos, err := s.contentService.ListClients(r.Context())
	if err != nil {
		s.serverError(w, "failed to list clients", err)
		return
	}
	s.jsonResponse(w, logos)
}

func (s *Server) handleTestimonials(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	list, err := s.contentService.ListApprovedTestimonials(r.Context())
	if err != nil {
		s.serverError(w, "failed to list testimonials", err)
		return
	}
	s.jsonResponse(w, list)
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	members, err := s.contentService.ListTeam(r.Context())
	if err != nil {
		s.serverError(w, "failed to list team", err)
		return
	}
	s.jsonResponse(w, members)
}

// ---- Leads ----

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var msg models.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		s.errorResponse(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := s.contactService.SubmitContact(r.Context(), &msg); err != nil {
		if errors.Is(err, recruit.ErrContactInvalid) {
			s.errorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.serverError(w, "failed to save contact", err)
		return
	}

	s.jsonResponse(w, map[string]interface{}{
		"success": true,
		"message": "Message received",
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var transcript models.ChatTranscript
	if err := json.NewDecoder(r.Body).Decode(&transcript); err != nil {
		s.errorResponse(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := s.contactService.SubmitChat(r.Context(), &transcript); err != nil {
		if errors.Is(err, recruit.ErrChatInvalid) {
			s.errorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.serverError(w, "failed to save chat", err)
		return
	}

	s.jsonResponse(w, map[string]interface{}{
		"success": true,
		"message": "Chat transcript saved",
	})
}

// ---- Admin: Workers ----

func (s *Server) handleAdminWorkers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		filter := models.WorkerFilter{
			Page:  queryInt(r, "page", 1),
			Limit: queryInt(r, "limit", models.MaxWorkerPageSize),
		}
		page, err := s.workerService.List(r.Context(), filter)
		if err != nil {
			s.serverError(w, "failed to list workers", err)
			return
		}
		s.jsonResponse(w, page)

	case http.MethodPost:
		var worker models.Worker
		if err := json.NewDecoder(r.Body).Decode(&worker); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := s.workerService.Upsert(r.Context(), &worker); err != nil {
			if errors.Is(err, recruit.ErrWorkerInvalid) {
				s.errorResponse(w, err.Error(), http.StatusBadRequest)
				return
			}
			s.serverError(w, "failed to save worker", err)
			return
		}
		s.savedResponse(w, worker)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAdminWorkerByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/admin/workers/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		worker, err := s.workerService.Get(r.Context(), id)
		if err != nil {
			s.serverError(w, "failed to get worker", err)
			return
		}
		if worker == nil {
			http.NotFound(w, r)
			return
		}
		interactions, err := s.analyticsService.WorkerInteractions(r.Context(), id)
		if err != nil {
			s.serverError(w, "failed to count interactions", err)
			return
		}
		s.jsonResponse(w, map[string]interface{}{
			"worker":       worker,
			"interactions": interactions,
		})

	case http.MethodPut:
		var worker models.Worker
		if err := json.NewDecoder(r.Body).Decode(&worker); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		worker.ID = id
		if err := s.workerService.Upsert(r.Context(), &worker); err != nil {
			if errors.Is(err, recruit.ErrWorkerInvalid) {
				s.errorResponse(w, err.Error(), http.StatusBadRequest)
				return
			}
			s.serverError(w, "failed to save worker", err)
			return
		}
		s.savedResponse(w, worker)

	case http.MethodDelete:
		if err := s.workerService.Delete(r.Context(), id); err != nil {
			s.serverError(w, "failed to delete worker", err)
			return
		}
		s.deletedResponse(w)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ---- Admin: Gallery ----

func (s *Server) handleAdminGallery(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.contentService.ListGallery(r.Context())
		if err != nil {
			s.serverError(w, "failed to list gallery", err)
			return
		}
		s.jsonResponse(w, items)

	case http.MethodPost:
		var item models.GalleryItem
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := s.contentService.UpsertGalleryItem(r.Context(), &item); err != nil {
			s.contentError(w, err, recruit.ErrGalleryInvalid, "failed to save gallery item")
			return
		}
		s.savedResponse(w, item)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAdminGalleryByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/admin/gallery/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		item, err := s.contentService.GetGalleryItem(r.Context(), id)
		if err != nil {
			s.serverError(w, "failed to get gallery item", err)
			return
		}
		if item == nil {
			http.NotFound(w, r)
			return
		}
		s.jsonResponse(w, item)

	case http.MethodPut:
		var item models.GalleryItem
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		item.ID = id
		if err := s.contentService.UpsertGalleryItem(r.Context(), &item); err != nil {
			s.contentError(w, err, recruit.ErrGalleryInvalid, "failed to save gallery item")
			return
		}
		s.savedResponse(w, item)

	case http.MethodDelete:
		if err := s.contentService.DeleteGalleryItem(r.Context(), id); err != nil {
			s.serverError(w, "failed to delete gallery item", err)
			return
		}
		s.deletedResponse(w)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ---- Admin: Clients ----

func (s *Server) handleAdminClients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		logos, err := s.contentService.ListClients(r.Context())
		if err != nil {
			s.serverError(w, "failed to list clients", err)
			return
		}
		s.jsonResponse(w, logos)

	case http.MethodPost:
		var logo models.ClientLogo
		if err := json.NewDecoder(r.Body).Decode(&logo); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := s.contentService.UpsertClient(r.Context(), &logo); err != nil {
			s.contentError(w, err, recruit.ErrClientInvalid, "failed to save client")
			return
		}
		s.savedResponse(w, logo)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAdminClientByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/admin/clients/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		logo, err := s.contentService.GetClient(r.Context(), id)
		if err != nil {
			s.serverError(w, "failed to get client", err)
			return
		}
		if logo == nil {
			http.NotFound(w, r)
			return
		}
		s.jsonResponse(w, logo)

	case http.MethodPut:
		var logo models.ClientLogo
		if err := json.NewDecoder(r.Body).Decode(&logo); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		logo.ID = id
		if err := s.contentService.UpsertClient(r.Context(), &logo); err != nil {
			s.contentError(w, err, recruit.ErrClientInvalid, "failed to save client")
			return
		}
		s.savedResponse(w, logo)

	case http.MethodDelete:
		if err := s.contentService.DeleteClient(r.Context(), id); err != nil {
			s.serverError(w, "failed to delete client", err)
			return
		}
		s.deletedResponse(w)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ---- Admin: Testimonials ----

func (s *Server) handleAdminTestimonials(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := s.contentService.ListTestimonials(r.Context())
		if err != nil {
			s.serverError(w, "failed to list testimonials", err)
			return
		}
		s.jsonResponse(w, list)

	case http.MethodPost:
		var t models.Testimonial
		if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := s.contentService.UpsertTestimonial(r.Context(), &t); err != nil {
			s.contentError(w, err, recruit.ErrTestimonialInvalid, "failed to save testimonial")
			return
		}
		s.savedResponse(w, t)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAdminTestimonialByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/admin/testimonials/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		t, err := s.contentService.GetTestimonial(r.Context(), id)
		if err != nil {
			s.serverError(w, "failed to get testimonial", err)
			return
		}
		if t == nil {
			http.NotFound(w, r)
			return
		}
		s.jsonResponse(w, t)

	case http.MethodPut:
		var t models.Testimonial
		if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		t.ID = id
		if err := s.contentService.UpsertTestimonial(r.Context(), &t); err != nil {
			s.contentError(w, err, recruit.ErrTestimonialInvalid, "failed to save testimonial")
			return
		}
		s.savedResponse(w, t)

	case http.MethodDelete:
		if err := s.contentService.DeleteTestimonial(r.Context(), id); err != nil {
			s.serverError(w, "failed to delete testimonial", err)
			return
		}
		s.deletedResponse(w)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ---- Admin: Team ----

func (s *Server) handleAdminTeam(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		members, err := s.contentService.ListTeam(r.Context())
		if err != nil {
			s.serverError(w, "failed to list team", err)
			return
		}
		s.jsonResponse(w, members)

	case http.MethodPost:
		var m models.TeamMember
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := s.contentService.UpsertTeamMember(r.Context(), &m); err != nil {
			s.contentError(w, err, recruit.ErrTeamMemberInvalid, "failed to save team member")
			return
		}
		s.savedResponse(w, m)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAdminTeamByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/admin/team/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		m, err := s.contentService.GetTeamMember(r.Context(), id)
		if err != nil {
			s.serverError(w, "failed to get team member", err)
			return
		}
		if m == nil {
			http.NotFound(w, r)
			return
		}
		s.jsonResponse(w, m)

	case http.MethodPut:
		var m models.TeamMember
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		m.ID = id
		if err := s.contentService.UpsertTeamMember(r.Context(), &m); err != nil {
			s.contentError(w, err, recruit.ErrTeamMemberInvalid, "failed to save team member")
			return
		}
		s.savedResponse(w, m)

	case http.MethodDelete:
		if err := s.contentService.DeleteTeamMember(r.Context(), id); err != nil {
			s.serverError(w, "failed to delete team member", err)
			return
		}
		s.deletedResponse(w)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ---- Admin: Contacts ----

func (s *Server) handleAdminContacts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	list, err := s.contactService.ListContacts(r.Context())
	if err != nil {
		s.serverError(w, "failed to list contacts", err)
		return
	}
	s.jsonResponse(w, list)
}

func (s *Server) handleAdminContactByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/admin/contacts/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	// PUT marks the message as read; there is no general contact edit.
	switch r.Method {
	case http.MethodGet:
		msg, err := s.contactService.GetContact(r.Context(), id)
		if err != nil {
			s.serverError(w, "failed to get contact", err)
			return
		}
		if msg == nil {
			http.NotFound(w, r)
			return
		}
		s.jsonResponse(w, msg)

	case http.MethodPut:
		if err := s.contactService.MarkContactRead(r.Context(), id); err != nil {
			s.serverError(w, "failed to mark contact read", err)
			return
		}
		s.jsonResponse(w, map[string]interface{}{"success": true, "message": "Marked read"})

	case http.MethodDelete:
		if err := s.contactService.DeleteContact(r.Context(), id); err != nil {
			s.serverError(w, "failed to delete contact", err)
			return
		}
		s.deletedResponse(w)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ---- Admin: Chats ----

func (s *Server) handleAdminChats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	list, err := s.contactService.ListChats(r.Context())
	if err != nil {
		s.serverError(w, "failed to list chats", err)
		return
	}
	s.jsonResponse(w, list)
}

func (s *Server) handleAdminChatByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/admin/chats/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		t, err := s.contactService.GetChat(r.Context(), id)
		if err != nil {
			s.serverError(w, "failed to get chat", err)
			return
		}
		if t == nil {
			http.NotFound(w, r)
			return
		}
		s.jsonResponse(w, t)

	case http.MethodDelete:
		if err := s.contactService.DeleteChat(r.Context(), id); err != nil {
			s.serverError(w, "failed to delete chat", err)
			return
		}
		s.deletedResponse(w)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ---- Uploads ----

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	maxBytes := s.config.Upload.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 32 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		s.errorResponse(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, "file field missing: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	uploadDir := s.config.Upload.Dir
	if uploadDir == "" {
		uploadDir = "static/uploads"
	}
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		s.serverError(w, "failed to create upload dir", err)
		return
	}

	baseName := filepath.Base(header.Filename)
	destPath := filepath.Join(uploadDir, baseName)

	if _, err := os.Stat(destPath); err == nil {
		for i := 1; ; i++ {
			suffixName := filepath.Join(uploadDir, fmt.Sprintf("%d_%s", i, baseName))
			if _, err := os.Stat(suffixName); os.IsNotExist(err) {
				destPath = suffixName
				break
			}
		}
	}

	out, err := os.Create(destPath)
	if err != nil {
		s.serverError(w, "failed to save file", err)
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		s.serverError(w, "failed to write file", err)
		return
	}

	s.jsonResponse(w, map[string]interface{}{
		"success": true,
		"message": "File uploaded",
		"path":    "/" + filepath.ToSlash(destPath),
	})
}

// ---- Helper Methods ----

func (s *Server) jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) errorResponse(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// serverError logs the failure and writes a 500 envelope carrying the
// underlying error detail.
func (s *Server) serverError(w http.ResponseWriter, message string, err error) {
	s.logger.Error(message, zap.Error(err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
		"error":   err.Error(),
	})
}

func (s *Server) savedResponse(w http.ResponseWriter, data interface{}) {
	s.jsonResponse(w, map[string]interface{}{
		"success": true,
		"message": "Saved",
		"data":    data,
	})
}

func (s *Server) deletedResponse(w http.ResponseWriter) {
	s.jsonResponse(w, map[string]interface{}{
		"success": true,
		"message": "Deleted",
	})
}

// contentError maps a content validation error to 400, everything else to 500.
func (s *Server) contentError(w http.ResponseWriter, err, validationErr error, logMsg string) {
	if errors.Is(err, validationErr) {
		s.errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.serverError(w, logMsg, err)
}

// queryInt parses an integer query parameter with a default.
func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}

// clientIP extracts the requester's IP for geo enrichment.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
