package analysis

import (
	"fmt"

	"github.com/lumina-health/platform/pkg/common/models"
)

// computeConfidence starts from a 0.5 base, rewards data volume up to +0.3
// and pattern yield up to +0.2, clamped to 1.
func computeConfidence(totalDataPoints, patternsFound int) float64 {
	confidence := 0.5

	volume := float64(totalDataPoints) / 1000
	if volume > 0.3 {
		volume = 0.3
	}
	confidence += volume

	yield := float64(patternsFound) * 0.05
	if yield > 0.2 {
		yield = 0.2
	}
	confidence += yield

	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

// computeCompleteness is found/expected over the scope-flagged source
// categories. Wearable expects two independent units (device readings and
// daily summaries); lab results and medications have no integrated
// collection yet, so flagging them can only lower the score. An empty
// scope expects nothing and scores 1.
func computeCompleteness(scope models.AnalysisScope, dataset *models.HealthDataset) float64 {
	expected := 0
	found := 0

	if scope.Wearable {
		expected += 2
		if len(dataset.DeviceData) > 0 {
			found++
		}
		if len(dataset.DailySummaries) > 0 {
			found++
		}
	}
	if scope.LabResults {
		expected++
	}
	if scope.MenstrualCycle {
		expected++
		if len(dataset.CycleRecords) > 0 {
			found++
		}
	}
	if scope.Symptoms {
		expected++
		if len(dataset.SymptomLogs) > 0 {
			found++
		}
	}
	if scope.Medications {
		expected++
	}

	if expected == 0 {
		return 1.0
	}
	return float64(found) / float64(expected)
}

// buildKeyFindings summarizes the run. The list is never empty: a run that
// surfaced nothing reports stable patterns.
func buildKeyFindings(patterns []models.HealthPattern, correlations []models.HealthCorrelation, anomalies []models.HealthAnomaly, trends []models.Trend) []string {
	var findings []string

	if len(patterns) > 0 {
		findings = append(findings, fmt.Sprintf("Identified %d significant health patterns", len(patterns)))
	}

	if len(correlations) > 0 {
		findings = append(findings, fmt.Sprintf("Found %d meaningful correlations between your health metrics", len(correlations)))
	}

	if len(anomalies) > 0 {
		critical := 0
		for _, a := range anomalies {
			if a.Severity == models.SeverityCritical {
				critical++
			}
		}
		if critical > 0 {
			findings = append(findings, fmt.Sprintf("Detected %d anomalies requiring attention, %d of them critical", len(anomalies), critical))
		} else {
			findings = append(findings, fmt.Sprintf("Detected %d minor anomalies in your health data", len(anomalies)))
		}
	}

	for _, trend := range trends {
		if trend.Direction == models.DirectionStable {
			continue
		}
		findings = append(findings, fmt.Sprintf("Your %s is %s over the analyzed period", trend.Metric, trend.Direction))
	}

	if len(findings) == 0 {
		findings = append(findings, "Your health data shows you are maintaining stable patterns")
	}

	return findings
}
