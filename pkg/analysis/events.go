package analysis

import (
	"context"
	"time"

	"github.com/lumina-health/platform/pkg/common/logger"
	"github.com/lumina-health/platform/pkg/common/models"
)

// TopicDataIngested carries notifications that new health data landed for
// a subject. The engine reacts by scheduling a pattern detection pass over
// the trailing month.
const TopicDataIngested = "health.data.ingested"

const ingestionLookback = 30 * 24 * time.Hour

// HandleIngestionEvent schedules a background pattern detection session for
// the subject named in the event. Events without a subject_id are dropped.
func (s *Service) HandleIngestionEvent(ctx context.Context, event models.Event) error {
	subjectID, _ := event.Data["subject_id"].(string)
	if subjectID == "" {
		logger.Log.WithField("event_id", event.ID).Warn("ingestion event missing subject_id, skipping")
		return nil
	}

	now := time.Now().UTC()
	req := models.AnalysisRequest{
		SubjectID:   subjectID,
		SessionType: models.SessionTypePatternDetection,
		Scope:       models.AnalysisScope{Wearable: true, Symptoms: true},
		Timeframe: models.AnalysisTimeframe{
			StartDate: now.Add(-ingestionLookback),
			EndDate:   now,
			Period:    models.PeriodMonth,
		},
	}

	sessionID, err := s.StartAnalysis(ctx, req)
	if err != nil {
		return err
	}

	logger.WithSession(sessionID.String()).WithField("subject_id", subjectID).
		Info("Scheduled analysis from ingestion event")
	return nil
}
