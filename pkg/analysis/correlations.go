package analysis

import (
	"errors"
	"fmt"

	"github.com/lumina-health/platform/pkg/common/models"
	"github.com/lumina-health/platform/pkg/timeseries"
)

// CorrelationEngine evaluates a fixed list of metric pairs against the
// dataset. Pairs that fail the significance cutoff produce no record.
type CorrelationEngine struct {
	pairs  []MetricPair
	cutoff float64
}

func NewCorrelationEngine(rules Rules) *CorrelationEngine {
	return &CorrelationEngine{
		pairs:  rules.CorrelationPairs,
		cutoff: rules.SignificanceCutoff,
	}
}

func (e *CorrelationEngine) Evaluate(dataset *models.HealthDataset) ([]models.HealthCorrelation, error) {
	var correlations []models.HealthCorrelation

	for _, pair := range e.pairs {
		x, y := alignedSeries(dataset, pair.Metric1, pair.Metric2)
		stats, err := timeseries.Correlate(x, y)
		if err != nil {
			if errors.Is(err, timeseries.ErrInsufficientData) {
				continue
			}
			return nil, fmt.Errorf("correlating %s vs %s: %w", pair.Metric1, pair.Metric2, err)
		}

		if stats.SignificanceProxy > e.cutoff {
			continue
		}

		strength := timeseries.ClassifyStrength(stats.Coefficient)
		direction := models.DirectionPositive
		if stats.Coefficient < 0 {
			direction = models.DirectionNegative
		}

		correlations = append(correlations, models.HealthCorrelation{
			Metric1:           models.MetricRef{Name: pair.Metric1, Type: pair.Metric1Type},
			Metric2:           models.MetricRef{Name: pair.Metric2, Type: pair.Metric2Type},
			Coefficient:       stats.Coefficient,
			SignificanceProxy: stats.SignificanceProxy,
			SampleSize:        stats.SampleSize,
			Strength:          strength,
			Direction:         direction,
			ClinicalMeaning:   clinicalMeaning(strength),
			Insights:          correlationInsight(pair, strength, direction),
		})
	}

	return correlations, nil
}

func clinicalMeaning(strength string) string {
	switch strength {
	case models.StrengthVeryStrong:
		return models.RelevanceHigh
	case models.StrengthStrong:
		return models.RelevanceModerate
	case models.StrengthModerate:
		return models.RelevanceLow
	default:
		return models.RelevanceUnclear
	}
}

func correlationInsight(pair MetricPair, strength, direction string) string {
	verb := "increases"
	if direction == models.DirectionNegative {
		verb = "decreases"
	}
	return fmt.Sprintf("a %s relationship where better %s %s %s performance",
		strength, pair.Metric1, verb, pair.Metric2)
}
