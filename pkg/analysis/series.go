package analysis

import (
	"sort"
	"time"

	"github.com/lumina-health/platform/pkg/common/models"
	"github.com/lumina-health/platform/pkg/timeseries"
)

// Metric names backed by the daily summary and symptom log streams. Any
// other name resolves against device readings by metric type.
const (
	MetricSleepHours       = "sleep_hours"
	MetricSteps            = "steps"
	MetricRestingHeartRate = "resting_heart_rate"
	MetricActiveMinutes    = "active_minutes"
	MetricMoodScore        = "mood_score"
	MetricEnergyLevel      = "energy_level"
	MetricSymptomSeverity  = "symptom_severity"
)

// metricSeries extracts the chronologically ordered observations of one
// metric, dropping records where the value is missing.
func metricSeries(dataset *models.HealthDataset, metric string) []timeseries.Point {
	var points []timeseries.Point

	switch metric {
	case MetricSleepHours, MetricSteps, MetricRestingHeartRate, MetricActiveMinutes:
		for _, summary := range dataset.DailySummaries {
			if v := summaryValue(summary, metric); v != nil {
				points = append(points, timeseries.Point{Date: summary.Date, Value: *v})
			}
		}
	case MetricMoodScore, MetricEnergyLevel, MetricSymptomSeverity:
		for _, log := range dataset.SymptomLogs {
			if v := symptomValue(log, metric); v != nil {
				points = append(points, timeseries.Point{Date: log.LoggedAt, Value: *v})
			}
		}
	default:
		for _, reading := range dataset.DeviceData {
			if reading.MetricType == metric {
				points = append(points, timeseries.Point{Date: reading.RecordedAt, Value: reading.Value})
			}
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

func summaryValue(summary models.DailySummary, metric string) *float64 {
	switch metric {
	case MetricSleepHours:
		return summary.SleepHours
	case MetricSteps:
		return summary.Steps
	case MetricRestingHeartRate:
		return summary.RestingHeartRate
	case MetricActiveMinutes:
		return summary.ActiveMinutes
	}
	return nil
}

func symptomValue(log models.SymptomLog, metric string) *float64 {
	switch metric {
	case MetricMoodScore:
		return log.MoodScore
	case MetricEnergyLevel:
		return log.EnergyLevel
	case MetricSymptomSeverity:
		return log.Severity
	}
	return nil
}

// metricFamily maps a metric name to its clinical family, used for anomaly
// typing and cause lists.
func metricFamily(metric string) string {
	switch metric {
	case MetricSleepHours:
		return "sleep"
	case MetricSteps, MetricActiveMinutes:
		return "activity"
	case MetricRestingHeartRate, "heart_rate", "hrv":
		return "cardiovascular"
	case MetricMoodScore, MetricEnergyLevel, MetricSymptomSeverity:
		return "mood"
	default:
		return "general"
	}
}

// alignedSeries pairs two metrics on calendar days present in both, averaging
// multiple observations within a day. Days with a missing value on either
// side are dropped from this pair only.
func alignedSeries(dataset *models.HealthDataset, metric1, metric2 string) (x, y []float64) {
	byDay1 := dailyAverages(metricSeries(dataset, metric1))
	byDay2 := dailyAverages(metricSeries(dataset, metric2))

	days := make([]string, 0, len(byDay1))
	for day := range byDay1 {
		if _, ok := byDay2[day]; ok {
			days = append(days, day)
		}
	}
	sort.Strings(days)

	for _, day := range days {
		x = append(x, byDay1[day])
		y = append(y, byDay2[day])
	}
	return x, y
}

func dailyAverages(points []timeseries.Point) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, p := range points {
		day := p.Date.Format("2006-01-02")
		sums[day] += p.Value
		counts[day]++
	}
	averages := make(map[string]float64, len(sums))
	for day, sum := range sums {
		averages[day] = sum / float64(counts[day])
	}
	return averages
}

// datasetMetrics lists every metric with at least one observation, in a
// stable order: summary metrics, symptom metrics, then device metric types.
func datasetMetrics(dataset *models.HealthDataset) []string {
	var metrics []string

	for _, metric := range []string{MetricSleepHours, MetricSteps, MetricRestingHeartRate, MetricActiveMinutes} {
		if len(metricSeries(dataset, metric)) > 0 {
			metrics = append(metrics, metric)
		}
	}
	for _, metric := range []string{MetricMoodScore, MetricEnergyLevel, MetricSymptomSeverity} {
		if len(metricSeries(dataset, metric)) > 0 {
			metrics = append(metrics, metric)
		}
	}

	seen := make(map[string]struct{})
	var deviceMetrics []string
	for _, reading := range dataset.DeviceData {
		if _, ok := seen[reading.MetricType]; ok {
			continue
		}
		seen[reading.MetricType] = struct{}{}
		deviceMetrics = append(deviceMetrics, reading.MetricType)
	}
	sort.Strings(deviceMetrics)

	return append(metrics, deviceMetrics...)
}

// windowLabel renders the analyzed window for pattern records.
func windowLabel(timeframe models.AnalysisTimeframe) string {
	if timeframe.Period != "" && timeframe.Period != models.PeriodAll {
		return timeframe.Period
	}
	const day = 24 * time.Hour
	days := int(timeframe.EndDate.Sub(timeframe.StartDate)/day) + 1
	if days < 1 {
		days = 1
	}
	switch {
	case days <= 7:
		return models.PeriodWeek
	case days <= 31:
		return models.PeriodMonth
	case days <= 92:
		return models.PeriodQuarter
	default:
		return models.PeriodYear
	}
}
