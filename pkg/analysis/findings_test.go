package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/lumina-health/platform/pkg/common/models"
)

func TestComputeConfidence(t *testing.T) {
	cases := []struct {
		points   int
		patterns int
		expected float64
	}{
		{0, 0, 0.5},
		{100, 0, 0.6},
		{100, 2, 0.7},
		{1000, 0, 0.8},
		{2000, 10, 1.0},
		{500, 1, 0.85},
	}

	for _, tc := range cases {
		got := computeConfidence(tc.points, tc.patterns)
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("computeConfidence(%d, %d) = %f, expected %f", tc.points, tc.patterns, got, tc.expected)
		}
	}
}

func TestComputeCompleteness(t *testing.T) {
	full := &models.HealthDataset{
		DeviceData:     []models.DeviceReading{{}},
		DailySummaries: []models.DailySummary{{}},
		CycleRecords:   []models.CycleRecord{{}},
		SymptomLogs:    []models.SymptomLog{{}},
	}
	summariesOnly := &models.HealthDataset{DailySummaries: []models.DailySummary{{}}}

	cases := []struct {
		name     string
		scope    models.AnalysisScope
		dataset  *models.HealthDataset
		expected float64
	}{
		{"empty scope", models.AnalysisScope{}, &models.HealthDataset{}, 1.0},
		{"wearable complete", models.AnalysisScope{Wearable: true}, full, 1.0},
		{"wearable half", models.AnalysisScope{Wearable: true}, summariesOnly, 0.5},
		{"lab results never found", models.AnalysisScope{Wearable: true, LabResults: true}, full, 2.0 / 3},
		{"all flags", models.AnalysisScope{Wearable: true, LabResults: true, MenstrualCycle: true, Symptoms: true, Medications: true}, full, 4.0 / 6},
		{"symptoms missing", models.AnalysisScope{Symptoms: true}, &models.HealthDataset{}, 0.0},
	}

	for _, tc := range cases {
		got := computeCompleteness(tc.scope, tc.dataset)
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("%s: computeCompleteness = %f, expected %f", tc.name, got, tc.expected)
		}
	}
}

func TestKeyFindingsNeverEmpty(t *testing.T) {
	findings := buildKeyFindings(nil, nil, nil, nil)
	if len(findings) != 1 {
		t.Fatalf("expected 1 fallback finding, got %d", len(findings))
	}
	if findings[0] != "Your health data shows you are maintaining stable patterns" {
		t.Errorf("unexpected fallback finding: %q", findings[0])
	}
}

func TestKeyFindingsComposition(t *testing.T) {
	patterns := []models.HealthPattern{{}, {}}
	correlations := []models.HealthCorrelation{{}}
	anomalies := []models.HealthAnomaly{
		{Severity: models.SeverityCritical},
		{Severity: models.SeverityLow},
	}
	trends := []models.Trend{
		{Metric: MetricSleepHours, Direction: models.DirectionIncreasing},
		{Metric: MetricSteps, Direction: models.DirectionStable},
	}

	findings := buildKeyFindings(patterns, correlations, anomalies, trends)
	if len(findings) != 4 {
		t.Fatalf("expected 4 findings, got %d: %v", len(findings), findings)
	}
	if findings[0] != "Identified 2 significant health patterns" {
		t.Errorf("unexpected pattern finding: %q", findings[0])
	}
	if findings[1] != "Found 1 meaningful correlations between your health metrics" {
		t.Errorf("unexpected correlation finding: %q", findings[1])
	}
	if !strings.Contains(findings[2], "1 of them critical") {
		t.Errorf("expected critical anomaly count, got %q", findings[2])
	}
	if findings[3] != "Your sleep_hours is increasing over the analyzed period" {
		t.Errorf("unexpected trend finding: %q", findings[3])
	}
}

func TestKeyFindingsMinorAnomalies(t *testing.T) {
	anomalies := []models.HealthAnomaly{{Severity: models.SeverityLow}, {Severity: models.SeverityModerate}}

	findings := buildKeyFindings(nil, nil, anomalies, nil)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0] != "Detected 2 minor anomalies in your health data" {
		t.Errorf("unexpected anomaly finding: %q", findings[0])
	}
}
