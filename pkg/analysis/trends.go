package analysis

import (
	"github.com/lumina-health/platform/pkg/common/models"
	"github.com/lumina-health/platform/pkg/timeseries"
)

// TrendAnalyzer computes direction and strength for every metric with
// enough chronologically ordered observations. Trends attach to the
// session rather than being persisted on their own.
type TrendAnalyzer struct {
	MinPoints int
}

func NewTrendAnalyzer(rules Rules) *TrendAnalyzer {
	return &TrendAnalyzer{MinPoints: rules.MinTrendPoints}
}

func (t *TrendAnalyzer) Analyze(dataset *models.HealthDataset) []models.Trend {
	var trends []models.Trend

	for _, metric := range datasetMetrics(dataset) {
		points := metricSeries(dataset, metric)
		if len(points) < t.MinPoints {
			continue
		}

		stats, err := timeseries.Trend(points)
		if err != nil {
			continue
		}

		trends = append(trends, models.Trend{
			Metric:            metric,
			Direction:         stats.Direction,
			Strength:          stats.Strength,
			SignificanceProxy: stats.SignificanceProxy,
		})
	}

	return trends
}
