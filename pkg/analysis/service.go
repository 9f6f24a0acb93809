package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lumina-health/platform/pkg/common/logger"
	"github.com/lumina-health/platform/pkg/common/models"
	"github.com/lumina-health/platform/pkg/healthdata"
	"github.com/lumina-health/platform/pkg/observability/metrics"
)

var ErrInvalidRequest = errors.New("invalid analysis request")

// Store is the persistence boundary for sessions and their children. The
// gorm Repository implements it; tests substitute in-memory fakes.
type Store interface {
	InsertSession(ctx context.Context, session models.AnalysisSession) error
	UpdateSession(ctx context.Context, sessionID uuid.UUID, patch SessionPatch) error
	GetSession(ctx context.Context, sessionID uuid.UUID) (models.AnalysisSession, error)
	ListSessionsBySubject(ctx context.Context, subjectID string, limit int) ([]models.AnalysisSession, error)
	InsertPattern(ctx context.Context, pattern models.HealthPattern) error
	InsertCorrelation(ctx context.Context, correlation models.HealthCorrelation) error
	InsertAnomaly(ctx context.Context, anomaly models.HealthAnomaly) error
	GetPatternsBySession(ctx context.Context, sessionID uuid.UUID) ([]models.HealthPattern, error)
	GetCorrelationsBySession(ctx context.Context, sessionID uuid.UUID) ([]models.HealthCorrelation, error)
	GetAnomaliesBySession(ctx context.Context, sessionID uuid.UUID) ([]models.HealthAnomaly, error)
	DeleteSessionChildren(ctx context.Context, sessionID uuid.UUID) error
}

// EventPublisher announces terminal session states on the platform bus.
// The kafka producer satisfies it; nil disables publication.
type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType string, source string, data map[string]interface{}) error
}

const eventSource = "analysis-engine"

// Service owns the session lifecycle: it validates requests, creates the
// session in processing state, runs aggregation and the four analyzers in
// the background, and persists the completed bundle.
type Service struct {
	store        Store
	aggregator   *healthdata.Aggregator
	registry     *Registry
	correlations *CorrelationEngine
	anomalies    *AnomalyDetector
	trends       *TrendAnalyzer
	cache        ResultCache
	events       EventPublisher
	modelVersion string
	workerSem    chan struct{}
}

func NewService(store Store, source healthdata.Source, registry *Registry, rules Rules, modelVersion string, maxWorkers int, cache ResultCache, events EventPublisher) *Service {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	return &Service{
		store:        store,
		aggregator:   healthdata.NewAggregator(source),
		registry:     registry,
		correlations: NewCorrelationEngine(rules),
		anomalies:    NewAnomalyDetector(rules),
		trends:       NewTrendAnalyzer(rules),
		cache:        cache,
		events:       events,
		modelVersion: modelVersion,
		workerSem:    make(chan struct{}, maxWorkers),
	}
}

// StartAnalysis validates the request, persists the session in processing
// state and schedules the run. The returned id is immediately pollable.
func (s *Service) StartAnalysis(ctx context.Context, req models.AnalysisRequest) (uuid.UUID, error) {
	if err := validateRequest(req); err != nil {
		return uuid.Nil, err
	}

	session := models.AnalysisSession{
		ID:               uuid.New(),
		SubjectID:        req.SubjectID,
		SessionType:      req.SessionType,
		ModelVersion:     s.modelVersion,
		InputDataSources: req.Scope.DataSources(),
		Scope:            req.Scope,
		Timeframe:        req.Timeframe,
		ProcessingStatus: models.StatusProcessing,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.store.InsertSession(ctx, session); err != nil {
		return uuid.Nil, fmt.Errorf("persisting analysis session: %w", err)
	}

	metrics.IncSessionStarted()
	go s.run(session)

	return session.ID, nil
}

// GetResults assembles the composite view of a session and its children.
// Recommendations are derived from the stored children on every read.
// Terminal sessions are served from and written to the result cache.
func (s *Service) GetResults(ctx context.Context, sessionID uuid.UUID) (*models.AnalysisResults, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, sessionID); ok {
			return cached, nil
		}
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	patterns, err := s.store.GetPatternsBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading patterns: %w", err)
	}
	correlations, err := s.store.GetCorrelationsBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading correlations: %w", err)
	}
	anomalies, err := s.store.GetAnomaliesBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading anomalies: %w", err)
	}

	results := &models.AnalysisResults{
		Session:         session,
		Patterns:        patterns,
		Correlations:    correlations,
		Anomalies:       anomalies,
		Recommendations: BuildRecommendations(patterns, correlations, anomalies),
	}

	if s.cache != nil && isTerminal(session.ProcessingStatus) {
		s.cache.Set(ctx, results)
	}

	return results, nil
}

// ListSessions returns a subject's sessions, most recent first.
func (s *Service) ListSessions(ctx context.Context, subjectID string, limit int) ([]models.AnalysisSession, error) {
	return s.store.ListSessionsBySubject(ctx, subjectID, limit)
}

func (s *Service) run(session models.AnalysisSession) {
	s.workerSem <- struct{}{}
	defer func() { <-s.workerSem }()

	ctx := context.Background()
	start := time.Now()

	dataset, err := s.aggregator.Aggregate(ctx, session.SubjectID, session.Scope, session.Timeframe)
	if err != nil {
		s.failSession(ctx, session, start, err)
		return
	}

	now := time.Now().UTC()

	var patterns []models.HealthPattern
	for _, analyzer := range s.registry.Analyzers() {
		pattern, err := analyzer.Analyze(dataset)
		if err != nil {
			s.failSession(ctx, session, start, fmt.Errorf("%s analyzer: %w", analyzer.Name(), err))
			return
		}
		if pattern == nil {
			continue
		}
		pattern.ID = uuid.New()
		pattern.SessionID = session.ID
		pattern.CreatedAt = now
		patterns = append(patterns, *pattern)
	}

	correlations, err := s.correlations.Evaluate(dataset)
	if err != nil {
		s.failSession(ctx, session, start, fmt.Errorf("correlation engine: %w", err))
		return
	}
	for i := range correlations {
		correlations[i].ID = uuid.New()
		correlations[i].SessionID = session.ID
		correlations[i].CreatedAt = now
	}

	anomalies := s.anomalies.Detect(dataset)
	for i := range anomalies {
		anomalies[i].ID = uuid.New()
		anomalies[i].SessionID = session.ID
		anomalies[i].CreatedAt = now
	}

	trends := s.trends.Analyze(dataset)

	confidence := computeConfidence(dataset.TotalDataPoints(), len(patterns))
	completeness := computeCompleteness(session.Scope, dataset)
	findings := buildKeyFindings(patterns, correlations, anomalies, trends)

	// Children are written only once the whole run has succeeded, so a
	// completed session always has a consistent child set.
	if err := s.persistChildren(ctx, patterns, correlations, anomalies); err != nil {
		s.failSession(ctx, session, start, err)
		return
	}

	completed := time.Now().UTC()
	patch := SessionPatch{
		Status:               models.StatusCompleted,
		KeyFindings:          findings,
		TrendsIdentified:     trends,
		ConfidenceScore:      confidence,
		DataCompleteness:     completeness,
		ProcessingDurationMs: time.Since(start).Milliseconds(),
		CompletedAt:          &completed,
	}
	if err := s.store.UpdateSession(ctx, session.ID, patch); err != nil {
		logger.WithSession(session.ID.String()).WithError(err).Error("failed to mark session completed")
		return
	}

	metrics.IncSessionCompleted()
	metrics.ObserveDetections(len(patterns), len(correlations), len(anomalies))

	logger.WithSession(session.ID.String()).WithFields(map[string]interface{}{
		"patterns":     len(patterns),
		"correlations": len(correlations),
		"anomalies":    len(anomalies),
		"trends":       len(trends),
		"duration_ms":  patch.ProcessingDurationMs,
	}).Info("Analysis session completed")

	s.publish(ctx, "analysis.completed", map[string]interface{}{
		"session_id":        session.ID.String(),
		"subject_id":        session.SubjectID,
		"patterns_found":    len(patterns),
		"anomalies_found":   len(anomalies),
		"confidence_score":  confidence,
		"data_completeness": completeness,
	})
}

func (s *Service) persistChildren(ctx context.Context, patterns []models.HealthPattern, correlations []models.HealthCorrelation, anomalies []models.HealthAnomaly) error {
	for _, pattern := range patterns {
		if err := s.store.InsertPattern(ctx, pattern); err != nil {
			return fmt.Errorf("persisting pattern: %w", err)
		}
	}
	for _, correlation := range correlations {
		if err := s.store.InsertCorrelation(ctx, correlation); err != nil {
			return fmt.Errorf("persisting correlation: %w", err)
		}
	}
	for _, anomaly := range anomalies {
		if err := s.store.InsertAnomaly(ctx, anomaly); err != nil {
			return fmt.Errorf("persisting anomaly: %w", err)
		}
	}
	return nil
}

func (s *Service) failSession(ctx context.Context, session models.AnalysisSession, start time.Time, cause error) {
	logger.WithSession(session.ID.String()).WithError(cause).Error("analysis session failed")

	// A failed session must read back with zero children.
	if err := s.store.DeleteSessionChildren(ctx, session.ID); err != nil {
		logger.WithSession(session.ID.String()).WithError(err).Error("failed to clean up child records")
	}

	completed := time.Now().UTC()
	patch := SessionPatch{
		Status:               models.StatusFailed,
		ErrorDetails:         cause.Error(),
		ProcessingDurationMs: time.Since(start).Milliseconds(),
		CompletedAt:          &completed,
	}
	if err := s.store.UpdateSession(ctx, session.ID, patch); err != nil {
		logger.WithSession(session.ID.String()).WithError(err).Error("failed to mark session failed")
	}

	metrics.IncSessionFailed()

	s.publish(ctx, "analysis.failed", map[string]interface{}{
		"session_id": session.ID.String(),
		"subject_id": session.SubjectID,
		"error":      cause.Error(),
	})
}

func (s *Service) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEvent(ctx, eventType, eventSource, data); err != nil {
		logger.Log.WithError(err).Warn("failed to publish analysis event")
	}
}

func isTerminal(status string) bool {
	return status == models.StatusCompleted || status == models.StatusFailed
}

func validateRequest(req models.AnalysisRequest) error {
	if req.SubjectID == "" {
		return fmt.Errorf("%w: subject id is required", ErrInvalidRequest)
	}

	switch req.SessionType {
	case models.SessionTypeFullAnalysis, models.SessionTypeTargetedAnalysis, models.SessionTypePatternDetection:
	default:
		return fmt.Errorf("%w: unknown session type %q", ErrInvalidRequest, req.SessionType)
	}

	if req.Timeframe.StartDate.IsZero() || req.Timeframe.EndDate.IsZero() {
		return fmt.Errorf("%w: timeframe start and end are required", ErrInvalidRequest)
	}
	if req.Timeframe.StartDate.After(req.Timeframe.EndDate) {
		return fmt.Errorf("%w: timeframe start is after end", ErrInvalidRequest)
	}

	switch req.Timeframe.Period {
	case "", models.PeriodWeek, models.PeriodMonth, models.PeriodQuarter, models.PeriodYear, models.PeriodAll:
	default:
		return fmt.Errorf("%w: unknown period %q", ErrInvalidRequest, req.Timeframe.Period)
	}

	return nil
}
