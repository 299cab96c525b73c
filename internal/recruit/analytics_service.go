package recruit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/almanarhr/recruit-api/internal/analytics"
	"github.com/almanarhr/recruit-api/internal/database"
	"github.com/almanarhr/recruit-api/internal/geo"
	"github.com/almanarhr/recruit-api/internal/metrics"
	"github.com/almanarhr/recruit-api/internal/models"
	"github.com/almanarhr/recruit-api/internal/storage"
)

// ErrMissingFields is returned when any event in an ingest batch lacks a
// required field. The batch is rejected as a whole.
var ErrMissingFields = errors.New("missing required fields in one or more events")

// dailyCounterTTL keeps the per-day Redis counters around long enough for
// day-over-day comparisons without growing unbounded.
const dailyCounterTTL = 48 * time.Hour

// AnalyticsService ingests interaction events and serves the aggregated
// per-worker statistics views.
type AnalyticsService struct {
	events  storage.EventStore
	workers storage.WorkerRepo
	redis   *database.RedisDB
	geo     *geo.Provider
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewAnalyticsService constructs an AnalyticsService. redis, geo and metrics
// are optional; nil disables the corresponding enrichment.
func NewAnalyticsService(events storage.EventStore, workers storage.WorkerRepo, rdb *database.RedisDB, geoProvider *geo.Provider, m *metrics.Metrics, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		events:  events,
		workers: workers,
		redis:   rdb,
		geo:     geoProvider,
		metrics: m,
		logger:  logger,
	}
}

// Ingest validates and persists a batch of interaction events. Validation
// happens before any write: a batch with one bad element persists nothing.
// clientIP is used for optional country enrichment and may be empty.
func (s *AnalyticsService) Ingest(ctx context.Context, inputs []models.EventInput, clientIP string) error {
	if len(inputs) == 0 {
		return ErrMissingFields
	}
	for _, in := range inputs {
		if !in.Valid() {
			return ErrMissingFields
		}
	}

	country := s.lookupCountry(clientIP)

	now := time.Now().UTC()
	events := make([]*models.InteractionEvent, 0, len(inputs))
	for _, in := range inputs {
		events = append(events, &models.InteractionEvent{
			ID:         uuid.NewString(),
			UserType:   models.ParseUserType(in.UserType),
			UserID:     in.UserID,
			WorkerID:   in.WorkerID,
			ActionType: models.NormalizeAction(in.ActionType),
			GeoCountry: country,
			Timestamp:  now,
		})
	}

	if err := s.events.SaveEvents(ctx, events); err != nil {
		if s.metrics != nil {
			s.metrics.RecordIngestBatch("error")
		}
		return fmt.Errorf("failed to save events: %w", err)
	}

	for _, ev := range events {
		if s.metrics != nil {
			s.metrics.RecordEvent(string(ev.ActionType), string(ev.UserType))
		}
		s.bumpDailyCounter(ctx, ev.ActionType)
	}
	if s.metrics != nil {
		s.metrics.RecordIngestBatch("ok")
	}

	return nil
}

// WorkerData returns the per-worker stat summaries: event counts grouped by
// (worker, action), joined with worker names. Events whose worker no longer
// exists are dropped.
func (s *AnalyticsService) WorkerData(ctx context.Context) ([]analytics.WorkerStatSummary, error) {
	start := time.Now()

	counts, err := s.events.GroupCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate events: %w", err)
	}

	ids := make([]string, 0, len(counts))
	seen := make(map[string]bool, len(counts))
	for _, c := range counts {
		if !seen[c.WorkerID] {
			seen[c.WorkerID] = true
			ids = append(ids, c.WorkerID)
		}
	}

	workers, err := s.workers.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load workers: %w", err)
	}

	summaries := analytics.BuildSummaries(counts, workers)

	if s.metrics != nil {
		s.metrics.RecordAggregation(time.Since(start))
	}

	return summaries, nil
}

// Summary returns site-wide interaction totals.
// WorkerInteractions returns the number of events recorded for one worker.
func (s *AnalyticsService) WorkerInteractions(ctx context.Context, workerID string) (int64, error) {
	n, err := s.events.CountByWorker(ctx, workerID)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return n, nil
}

func (s *AnalyticsService) Summary(ctx context.Context) (analytics.Totals, error) {
	summaries, err := s.WorkerData(ctx)
	if err != nil {
		return analytics.Totals{}, err
	}
	return analytics.Summarize(summaries), nil
}

// Ranking returns one page of workers ordered by total interactions,
// along with the top performer series for charting.
func (s *AnalyticsService) Ranking(ctx context.Context, pageIndex int) (analytics.Page, []analytics.Series, error) {
	summaries, err := s.WorkerData(ctx)
	if err != nil {
		return analytics.Page{}, nil, err
	}
	page := analytics.RankingPage(summaries, pageIndex)
	top := analytics.TopN(summaries, analytics.TopPerformers)
	return page, top, nil
}

// Comparison returns one page of the sortable, searchable comparison table.
func (s *AnalyticsService) Comparison(ctx context.Context, state analytics.ViewState) (analytics.Page, error) {
	summaries, err := s.WorkerData(ctx)
	if err != nil {
		return analytics.Page{}, err
	}
	return analytics.ComparisonPage(summaries, state), nil
}

// Today returns today's per-action event counts from the Redis counters.
// Counts are zero for all known actions when Redis is not configured.
func (s *AnalyticsService) Today(ctx context.Context) (map[models.ActionType]int64, error) {
	out := make(map[models.ActionType]int64, len(models.KnownActions))
	for _, action := range models.KnownActions {
		out[action] = 0
	}
	if s.redis == nil {
		return out, nil
	}

	day := time.Now().UTC().Format("2006-01-02")
	for _, action := range models.KnownActions {
		val, err := s.redis.Client.Get(ctx, dailyCounterKey(action, day)).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("failed to read daily counter: %w", err)
		}
		out[action] = val
	}
	return out, nil
}

// bumpDailyCounter increments today's Redis counter for the action.
// Counter failures are logged, never surfaced: the event log is the
// source of truth and the counters are a convenience cache.
func (s *AnalyticsService) bumpDailyCounter(ctx context.Context, action models.ActionType) {
	if s.redis == nil {
		return
	}
	day := time.Now().UTC().Format("2006-01-02")
	key := dailyCounterKey(action, day)

	pipe := s.redis.Client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, dailyCounterTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn("failed to bump daily counter",
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}

// lookupCountry resolves the client IP to an ISO country code.
func (s *AnalyticsService) lookupCountry(ip string) string {
	if s.geo == nil || ip == "" {
		return ""
	}
	country, err := s.geo.Country(ip)
	if err != nil {
		s.logger.Debug("geo lookup failed", zap.String("ip", ip), zap.Error(err))
		return ""
	}
	return country
}

func dailyCounterKey(action models.ActionType, day string) string {
	return fmt.Sprintf("stats:events:%s:%s", action, day)
}
