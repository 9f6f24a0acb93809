package analysis

import (
	"time"

	"github.com/lumina-health/platform/pkg/common/models"
)

var testWindowStart = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func fptr(v float64) *float64 {
	return &v
}

func testTimeframe(days int) models.AnalysisTimeframe {
	return models.AnalysisTimeframe{
		StartDate: testWindowStart,
		EndDate:   testWindowStart.AddDate(0, 0, days-1),
		Period:    models.PeriodMonth,
	}
}

// summaryDataset builds a dataset with one daily summary per entry in
// sleep/steps; nil entries leave that measurement missing for the day.
func summaryDataset(sleep, steps []*float64) *models.HealthDataset {
	days := len(sleep)
	if len(steps) > days {
		days = len(steps)
	}

	dataset := &models.HealthDataset{
		SubjectID: "subject-1",
		Timeframe: testTimeframe(days),
	}
	for i := 0; i < days; i++ {
		summary := models.DailySummary{
			SubjectID: "subject-1",
			Date:      testWindowStart.AddDate(0, 0, i),
		}
		if i < len(sleep) {
			summary.SleepHours = sleep[i]
		}
		if i < len(steps) {
			summary.Steps = steps[i]
		}
		dataset.DailySummaries = append(dataset.DailySummaries, summary)
	}
	return dataset
}

func sleepOnlyDataset(values ...float64) *models.HealthDataset {
	sleep := make([]*float64, len(values))
	for i, v := range values {
		sleep[i] = fptr(v)
	}
	return summaryDataset(sleep, nil)
}

func stepsOnlyDataset(values ...float64) *models.HealthDataset {
	steps := make([]*float64, len(values))
	for i, v := range values {
		steps[i] = fptr(v)
	}
	return summaryDataset(nil, steps)
}
