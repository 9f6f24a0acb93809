package analysis

import (
	"fmt"

	"github.com/lumina-health/platform/pkg/common/models"
)

// BuildRecommendations derives advice from stored session children. It is
// computed fresh at read time rather than persisted, so recommendation
// copy can evolve without rewriting history.
func BuildRecommendations(patterns []models.HealthPattern, correlations []models.HealthCorrelation, anomalies []models.HealthAnomaly) []string {
	var recommendations []string

	for _, pattern := range patterns {
		if pattern.HealthImpact != models.ImpactNegative || pattern.Actionability != "actionable" {
			continue
		}
		if advice, ok := patternAdvice[pattern.PatternType]; ok {
			recommendations = append(recommendations, advice)
		}
	}

	// One provider referral regardless of how many critical anomalies fired.
	for _, anomaly := range anomalies {
		if anomaly.Severity == models.SeverityCritical {
			recommendations = append(recommendations, "Consult your healthcare provider about recent out-of-range readings")
			break
		}
	}

	for _, correlation := range correlations {
		if !strongCorrelation(correlation.Strength) {
			continue
		}
		if correlation.ClinicalMeaning != models.RelevanceHigh && correlation.ClinicalMeaning != models.RelevanceModerate {
			continue
		}
		recommendations = append(recommendations, fmt.Sprintf(
			"Improving your %s may meaningfully influence your %s", correlation.Metric1.Name, correlation.Metric2.Name))
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Continue your current health patterns")
	}

	return recommendations
}

func strongCorrelation(strength string) bool {
	return strength == models.StrengthStrong || strength == models.StrengthVeryStrong
}

var patternAdvice = map[string]string{
	"sleep_pattern":    "Aim for a consistent sleep schedule of 7-9 hours per night",
	"activity_pattern": "Gradually increase daily activity toward 8,000 steps",
}
