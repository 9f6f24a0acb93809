package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lumina-health/platform/pkg/common/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("analysis session not found")

// SessionPatch carries the terminal-state update for a session. The row is
// written exactly twice: the initial processing insert and one patch.
type SessionPatch struct {
	Status               string
	KeyFindings          []string
	TrendsIdentified     []models.Trend
	ConfidenceScore      float64
	DataCompleteness     float64
	ProcessingDurationMs int64
	ErrorDetails         string
	CompletedAt          *time.Time
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&SessionRow{}, &PatternRow{}, &CorrelationRow{}, &AnomalyRow{})
}

func (r *Repository) InsertSession(ctx context.Context, session models.AnalysisSession) error {
	return r.db.WithContext(ctx).Create(sessionToRow(session)).Error
}

func (r *Repository) UpdateSession(ctx context.Context, sessionID uuid.UUID, patch SessionPatch) error {
	updates := map[string]interface{}{
		"processing_status":      patch.Status,
		"key_findings":           datatypes.NewJSONSlice(patch.KeyFindings),
		"trends_identified":      datatypes.NewJSONSlice(patch.TrendsIdentified),
		"confidence_score":       patch.ConfidenceScore,
		"data_completeness":      patch.DataCompleteness,
		"processing_duration_ms": patch.ProcessingDurationMs,
		"error_details":          patch.ErrorDetails,
		"updated_at":             time.Now().UTC(),
	}
	if patch.CompletedAt != nil {
		updates["completed_at"] = *patch.CompletedAt
	}
	return r.db.WithContext(ctx).Model(&SessionRow{}).Where("id = ?", sessionID).Updates(updates).Error
}

func (r *Repository) GetSession(ctx context.Context, sessionID uuid.UUID) (models.AnalysisSession, error) {
	var row SessionRow
	result := r.db.WithContext(ctx).First(&row, "id = ?", sessionID)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return models.AnalysisSession{}, ErrSessionNotFound
	}
	if result.Error != nil {
		return models.AnalysisSession{}, result.Error
	}
	return row.toDomain(), nil
}

func (r *Repository) ListSessionsBySubject(ctx context.Context, subjectID string, limit int) ([]models.AnalysisSession, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []SessionRow
	result := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("created_at desc").
		Limit(limit).
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	sessions := make([]models.AnalysisSession, 0, len(rows))
	for i := range rows {
		sessions = append(sessions, rows[i].toDomain())
	}
	return sessions, nil
}

func (r *Repository) InsertPattern(ctx context.Context, pattern models.HealthPattern) error {
	return r.db.WithContext(ctx).Create(patternToRow(pattern)).Error
}

func (r *Repository) InsertCorrelation(ctx context.Context, correlation models.HealthCorrelation) error {
	return r.db.WithContext(ctx).Create(correlationToRow(correlation)).Error
}

func (r *Repository) InsertAnomaly(ctx context.Context, anomaly models.HealthAnomaly) error {
	return r.db.WithContext(ctx).Create(anomalyToRow(anomaly)).Error
}

func (r *Repository) GetPatternsBySession(ctx context.Context, sessionID uuid.UUID) ([]models.HealthPattern, error) {
	var rows []PatternRow
	result := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("created_at asc").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	patterns := make([]models.HealthPattern, 0, len(rows))
	for i := range rows {
		patterns = append(patterns, rows[i].toDomain())
	}
	return patterns, nil
}

func (r *Repository) GetCorrelationsBySession(ctx context.Context, sessionID uuid.UUID) ([]models.HealthCorrelation, error) {
	var rows []CorrelationRow
	result := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("created_at asc").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	correlations := make([]models.HealthCorrelation, 0, len(rows))
	for i := range rows {
		correlations = append(correlations, rows[i].toDomain())
	}
	return correlations, nil
}

func (r *Repository) GetAnomaliesBySession(ctx context.Context, sessionID uuid.UUID) ([]models.HealthAnomaly, error) {
	var rows []AnomalyRow
	result := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("created_at asc").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	anomalies := make([]models.HealthAnomaly, 0, len(rows))
	for i := range rows {
		anomalies = append(anomalies, rows[i].toDomain())
	}
	return anomalies, nil
}

// DeleteSessionChildren removes any child records written for a session.
// Used when a run fails after some children were already inserted, so a
// failed session always reads back empty.
func (r *Repository) DeleteSessionChildren(ctx context.Context, sessionID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&PatternRow{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&CorrelationRow{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&AnomalyRow{}).Error
}
