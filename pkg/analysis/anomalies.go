package analysis

import (
	"github.com/lumina-health/platform/pkg/common/models"
	"github.com/lumina-health/platform/pkg/timeseries"
)

// AnomalyDetector flags statistical outliers per metric and classifies
// their severity and urgency.
type AnomalyDetector struct {
	MinPoints int
}

func NewAnomalyDetector(rules Rules) *AnomalyDetector {
	return &AnomalyDetector{MinPoints: rules.MinOutlierPoints}
}

func (d *AnomalyDetector) Detect(dataset *models.HealthDataset) []models.HealthAnomaly {
	var anomalies []models.HealthAnomaly

	for _, metric := range datasetMetrics(dataset) {
		points := metricSeries(dataset, metric)
		if len(points) < d.MinPoints {
			continue
		}
		values := make([]float64, len(points))
		for i, p := range points {
			values[i] = p.Value
		}

		outliers, err := timeseries.DetectOutliers(values)
		if err != nil {
			continue
		}

		family := metricFamily(metric)
		for _, outlier := range outliers {
			severity := severityFromScore(outlier.Score)
			anomalies = append(anomalies, models.HealthAnomaly{
				MetricName:        metric,
				MetricType:        family,
				AnomalyType:       models.AnomalyOutlier,
				DetectedValue:     outlier.Value,
				ExpectedValue:     outlier.Expected,
				AnomalyScore:      outlier.Score,
				Severity:          severity,
				Urgency:           urgencyFromScore(outlier.Score),
				PotentialCauses:   potentialCauses(family),
				RecommendedAction: recommendedAction(severity),
			})
		}
	}

	return anomalies
}

func severityFromScore(score float64) string {
	switch {
	case score >= 0.8:
		return models.SeverityCritical
	case score >= 0.6:
		return models.SeverityHigh
	case score >= 0.4:
		return models.SeverityModerate
	default:
		return models.SeverityLow
	}
}

func urgencyFromScore(score float64) string {
	switch {
	case score >= 0.8:
		return models.UrgencyImmediate
	case score >= 0.6:
		return models.UrgencyWithinWeek
	case score >= 0.4:
		return models.UrgencyWithinMonth
	default:
		return models.UrgencyRoutine
	}
}

// potentialCauses is illustrative per metric family, not causal inference.
func potentialCauses(family string) []string {
	switch family {
	case "sleep":
		return []string{"stress", "schedule disruption", "caffeine or alcohol intake"}
	case "activity":
		return []string{"illness or injury", "travel or schedule change", "weather"}
	case "cardiovascular":
		return []string{"stress", "illness", "medication change", "measurement error"}
	case "mood":
		return []string{"stress", "sleep disruption", "hormonal changes"}
	default:
		return []string{"measurement error", "routine change"}
	}
}

func recommendedAction(severity string) string {
	if severity == models.SeverityCritical {
		return "Consult your healthcare provider about this reading"
	}
	return "Monitor this metric over the coming days"
}
