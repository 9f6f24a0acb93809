package analysis

import (
	"fmt"
	"math"

	"github.com/lumina-health/platform/pkg/common/models"
)

// PatternAnalyzer inspects one aspect of the dataset. Returning (nil, nil)
// means "no pattern"; insufficient data is not an error at this level.
type PatternAnalyzer interface {
	Name() string
	Analyze(dataset *models.HealthDataset) (*models.HealthPattern, error)
}

// Registry is an explicit, constructed analyzer set owned by the Service.
// Tests substitute reduced registries without touching process-wide state.
type Registry struct {
	analyzers []PatternAnalyzer
}

func NewRegistry(analyzers ...PatternAnalyzer) *Registry {
	return &Registry{analyzers: analyzers}
}

func (r *Registry) Analyzers() []PatternAnalyzer {
	return r.analyzers
}

// DefaultRegistry builds the production analyzer set.
func DefaultRegistry(rules Rules) *Registry {
	return NewRegistry(
		&SleepPatternAnalyzer{MinPoints: rules.MinPatternPoints},
		&ActivityPatternAnalyzer{MinPoints: rules.MinPatternPoints},
	)
}

// SleepPatternAnalyzer evaluates sleep duration and consistency from daily
// summaries. Consistency is range-based, bounded to the 24-hour day.
type SleepPatternAnalyzer struct {
	MinPoints int
}

func (a *SleepPatternAnalyzer) Name() string {
	return "sleep_pattern"
}

func (a *SleepPatternAnalyzer) Analyze(dataset *models.HealthDataset) (*models.HealthPattern, error) {
	points := metricSeries(dataset, MetricSleepHours)
	if len(points) < a.MinPoints {
		return nil, nil
	}

	var sum float64
	minHours := math.Inf(1)
	maxHours := math.Inf(-1)
	for _, p := range points {
		sum += p.Value
		minHours = math.Min(minHours, p.Value)
		maxHours = math.Max(maxHours, p.Value)
	}
	mean := sum / float64(len(points))
	consistency := 1 - (maxHours-minHours)/24
	if consistency < 0 {
		consistency = 0
	}

	impact := models.ImpactNeutral
	relevance := models.RelevanceModerate
	actionability := "informational"
	switch {
	case mean >= 7 && consistency > 0.8:
		impact = models.ImpactPositive
	case mean < 6:
		impact = models.ImpactNegative
		relevance = models.RelevanceHigh
		actionability = "actionable"
	case consistency < 0.6:
		impact = models.ImpactMixed
		actionability = "actionable"
	}

	return &models.HealthPattern{
		PatternType:     "sleep_pattern",
		PatternCategory: "sleep",
		PatternName:     "sleep_consistency",
		Description: fmt.Sprintf("Average sleep of %.1f hours with %.0f%% consistency over %d days",
			mean, consistency*100, len(points)),
		Strength:          consistency,
		TimePeriod:        windowLabel(dataset.Timeframe),
		PrimaryMetrics:    []string{MetricSleepHours},
		HealthImpact:      impact,
		ClinicalRelevance: relevance,
		Actionability:     actionability,
	}, nil
}

// ActivityPatternAnalyzer evaluates daily step volume and consistency.
type ActivityPatternAnalyzer struct {
	MinPoints int
}

func (a *ActivityPatternAnalyzer) Name() string {
	return "activity_pattern"
}

func (a *ActivityPatternAnalyzer) Analyze(dataset *models.HealthDataset) (*models.HealthPattern, error) {
	points := metricSeries(dataset, MetricSteps)
	if len(points) < a.MinPoints {
		return nil, nil
	}

	var sum float64
	minSteps := math.Inf(1)
	maxSteps := math.Inf(-1)
	for _, p := range points {
		sum += p.Value
		minSteps = math.Min(minSteps, p.Value)
		maxSteps = math.Max(maxSteps, p.Value)
	}
	if maxSteps <= 0 {
		return nil, nil
	}
	mean := sum / float64(len(points))
	consistency := 1 - (maxSteps-minSteps)/maxSteps
	if consistency < 0 {
		consistency = 0
	}

	impact := models.ImpactNeutral
	relevance := models.RelevanceModerate
	actionability := "informational"
	switch {
	case mean >= 8000:
		impact = models.ImpactPositive
	case mean < 5000:
		impact = models.ImpactNegative
		actionability = "actionable"
	}

	return &models.HealthPattern{
		PatternType:     "activity_pattern",
		PatternCategory: "activity",
		PatternName:     "daily_step_volume",
		Description: fmt.Sprintf("Average of %.0f steps per day with %.0f%% consistency over %d days",
			mean, consistency*100, len(points)),
		Strength:          consistency,
		TimePeriod:        windowLabel(dataset.Timeframe),
		PrimaryMetrics:    []string{MetricSteps},
		HealthImpact:      impact,
		ClinicalRelevance: relevance,
		Actionability:     actionability,
	}, nil
}
