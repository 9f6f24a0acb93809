package analysis

import (
	"strings"
	"testing"

	"github.com/lumina-health/platform/pkg/common/models"
)

func TestSleepPatternPositive(t *testing.T) {
	analyzer := &SleepPatternAnalyzer{MinPoints: 7}
	dataset := sleepOnlyDataset(7.5, 7.6, 7.4, 7.5, 7.7, 7.3, 7.5)

	pattern, err := analyzer.Analyze(dataset)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if pattern == nil {
		t.Fatal("expected a sleep pattern")
	}
	if pattern.HealthImpact != models.ImpactPositive {
		t.Errorf("expected positive impact, got %q", pattern.HealthImpact)
	}
	if pattern.PatternType != "sleep_pattern" || pattern.PatternCategory != "sleep" {
		t.Errorf("unexpected typing: %q / %q", pattern.PatternType, pattern.PatternCategory)
	}
	if !strings.Contains(pattern.Description, "7.5 hours") {
		t.Errorf("description should mention the average, got %q", pattern.Description)
	}
}

func TestSleepPatternShortSleep(t *testing.T) {
	analyzer := &SleepPatternAnalyzer{MinPoints: 7}
	dataset := sleepOnlyDataset(5.5, 5.0, 5.8, 5.2, 5.6, 5.1, 5.4)

	pattern, err := analyzer.Analyze(dataset)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if pattern == nil {
		t.Fatal("expected a sleep pattern")
	}
	if pattern.HealthImpact != models.ImpactNegative {
		t.Errorf("expected negative impact, got %q", pattern.HealthImpact)
	}
	if pattern.ClinicalRelevance != models.RelevanceHigh {
		t.Errorf("expected high relevance, got %q", pattern.ClinicalRelevance)
	}
	if pattern.Actionability != "actionable" {
		t.Errorf("expected actionable, got %q", pattern.Actionability)
	}
}

func TestSleepPatternInsufficientData(t *testing.T) {
	analyzer := &SleepPatternAnalyzer{MinPoints: 7}
	dataset := sleepOnlyDataset(7, 7, 7, 7, 7)

	pattern, err := analyzer.Analyze(dataset)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if pattern != nil {
		t.Fatal("expected no pattern below the point minimum")
	}
}

func TestActivityPatternHighVolume(t *testing.T) {
	analyzer := &ActivityPatternAnalyzer{MinPoints: 7}
	dataset := stepsOnlyDataset(9000, 8800, 9200, 8500, 9100, 8700, 9000)

	pattern, err := analyzer.Analyze(dataset)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if pattern == nil {
		t.Fatal("expected an activity pattern")
	}
	if pattern.HealthImpact != models.ImpactPositive {
		t.Errorf("expected positive impact, got %q", pattern.HealthImpact)
	}
}

func TestActivityPatternLowVolume(t *testing.T) {
	analyzer := &ActivityPatternAnalyzer{MinPoints: 7}
	dataset := stepsOnlyDataset(3000, 3500, 2800, 3200, 3100, 2900, 3400)

	pattern, err := analyzer.Analyze(dataset)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if pattern == nil {
		t.Fatal("expected an activity pattern")
	}
	if pattern.HealthImpact != models.ImpactNegative {
		t.Errorf("expected negative impact, got %q", pattern.HealthImpact)
	}
	if pattern.Actionability != "actionable" {
		t.Errorf("expected actionable, got %q", pattern.Actionability)
	}
}

func TestActivityPatternAllZero(t *testing.T) {
	analyzer := &ActivityPatternAnalyzer{MinPoints: 7}
	dataset := stepsOnlyDataset(0, 0, 0, 0, 0, 0, 0)

	pattern, err := analyzer.Analyze(dataset)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if pattern != nil {
		t.Fatal("expected no pattern for all-zero step counts")
	}
}

func TestDefaultRegistryAnalyzers(t *testing.T) {
	registry := DefaultRegistry(DefaultRules())

	names := make(map[string]bool)
	for _, analyzer := range registry.Analyzers() {
		names[analyzer.Name()] = true
	}
	if !names["sleep_pattern"] || !names["activity_pattern"] {
		t.Errorf("default registry missing analyzers: %v", names)
	}
}
