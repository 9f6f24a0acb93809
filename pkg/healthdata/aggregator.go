package healthdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lumina-health/platform/pkg/common/models"
)

// ErrSourceUnavailable marks a storage read failure during aggregation.
// The orchestrator fails the whole session on it rather than producing a
// partial result.
var ErrSourceUnavailable = errors.New("health data source unavailable")

// Source is the read boundary with the record store. The gorm Repository
// implements it in production; tests substitute in-memory fakes.
type Source interface {
	FetchDeviceData(ctx context.Context, subjectID string, start, end time.Time) ([]models.DeviceReading, error)
	FetchDailySummaries(ctx context.Context, subjectID string, start, end time.Time) ([]models.DailySummary, error)
	FetchCycles(ctx context.Context, subjectID string, start, end time.Time) ([]models.CycleRecord, error)
	FetchSymptomLogs(ctx context.Context, subjectID string, start, end time.Time) ([]models.SymptomLog, error)
}

// Aggregator normalizes the scope-flagged source streams into one
// in-memory dataset for a single subject and time window.
type Aggregator struct {
	source Source
}

func NewAggregator(source Source) *Aggregator {
	return &Aggregator{source: source}
}

// Aggregate fetches each flagged stream within the timeframe. Streams not
// flagged in scope are left empty, not fetched; lab results and medication
// streams have no integrated collection yet and only affect completeness
// accounting downstream.
func (a *Aggregator) Aggregate(ctx context.Context, subjectID string, scope models.AnalysisScope, timeframe models.AnalysisTimeframe) (*models.HealthDataset, error) {
	dataset := &models.HealthDataset{
		SubjectID: subjectID,
		Timeframe: timeframe,
	}

	if scope.Wearable {
		deviceData, err := a.source.FetchDeviceData(ctx, subjectID, timeframe.StartDate, timeframe.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		dataset.DeviceData = deviceData

		summaries, err := a.source.FetchDailySummaries(ctx, subjectID, timeframe.StartDate, timeframe.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		dataset.DailySummaries = summaries
	}

	if scope.MenstrualCycle {
		cycles, err := a.source.FetchCycles(ctx, subjectID, timeframe.StartDate, timeframe.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		dataset.CycleRecords = cycles
	}

	if scope.Symptoms {
		logs, err := a.source.FetchSymptomLogs(ctx, subjectID, timeframe.StartDate, timeframe.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		dataset.SymptomLogs = logs
	}

	return dataset, nil
}
