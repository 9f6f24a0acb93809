package analysis

import (
	"testing"

	"github.com/lumina-health/platform/pkg/common/models"
)

func TestRecommendationsFallback(t *testing.T) {
	recommendations := BuildRecommendations(nil, nil, nil)
	if len(recommendations) != 1 {
		t.Fatalf("expected 1 fallback recommendation, got %d", len(recommendations))
	}
	if recommendations[0] != "Continue your current health patterns" {
		t.Errorf("unexpected fallback: %q", recommendations[0])
	}
}

func TestRecommendationsNegativeSleepPattern(t *testing.T) {
	patterns := []models.HealthPattern{{
		PatternType:   "sleep_pattern",
		HealthImpact:  models.ImpactNegative,
		Actionability: "actionable",
	}}

	recommendations := BuildRecommendations(patterns, nil, nil)
	if len(recommendations) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recommendations))
	}
	if recommendations[0] != "Aim for a consistent sleep schedule of 7-9 hours per night" {
		t.Errorf("unexpected recommendation: %q", recommendations[0])
	}
}

func TestRecommendationsIgnoreInformationalPatterns(t *testing.T) {
	patterns := []models.HealthPattern{{
		PatternType:   "sleep_pattern",
		HealthImpact:  models.ImpactNegative,
		Actionability: "informational",
	}}

	recommendations := BuildRecommendations(patterns, nil, nil)
	if recommendations[0] != "Continue your current health patterns" {
		t.Errorf("informational patterns must not produce advice, got %q", recommendations[0])
	}
}

func TestRecommendationsSingleReferral(t *testing.T) {
	anomalies := []models.HealthAnomaly{
		{Severity: models.SeverityCritical},
		{Severity: models.SeverityCritical},
		{Severity: models.SeverityLow},
	}

	recommendations := BuildRecommendations(nil, nil, anomalies)
	referrals := 0
	for _, r := range recommendations {
		if r == "Consult your healthcare provider about recent out-of-range readings" {
			referrals++
		}
	}
	if referrals != 1 {
		t.Errorf("expected exactly 1 provider referral, got %d", referrals)
	}
}

func TestRecommendationsStrongCorrelation(t *testing.T) {
	correlations := []models.HealthCorrelation{
		{
			Metric1:         models.MetricRef{Name: MetricSleepHours},
			Metric2:         models.MetricRef{Name: MetricSteps},
			Strength:        models.StrengthVeryStrong,
			ClinicalMeaning: models.RelevanceHigh,
		},
		{
			Metric1:         models.MetricRef{Name: MetricSteps},
			Metric2:         models.MetricRef{Name: MetricEnergyLevel},
			Strength:        models.StrengthWeak,
			ClinicalMeaning: models.RelevanceUnclear,
		},
	}

	recommendations := BuildRecommendations(nil, correlations, nil)
	if len(recommendations) != 1 {
		t.Fatalf("expected 1 recommendation, got %d: %v", len(recommendations), recommendations)
	}
	if recommendations[0] != "Improving your sleep_hours may meaningfully influence your steps" {
		t.Errorf("unexpected recommendation: %q", recommendations[0])
	}
}
