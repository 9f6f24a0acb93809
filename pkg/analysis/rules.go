package analysis

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MetricPair names two metrics the correlation engine evaluates together.
type MetricPair struct {
	Metric1     string `yaml:"metric1" json:"metric1"`
	Metric1Type string `yaml:"metric1_type" json:"metric1_type"`
	Metric2     string `yaml:"metric2" json:"metric2"`
	Metric2Type string `yaml:"metric2_type" json:"metric2_type"`
}

// Rules tunes the engine's thresholds and the correlation pair list.
// Shipped defaults match the recommendation logic; override with care.
type Rules struct {
	CorrelationPairs   []MetricPair `yaml:"correlation_pairs" json:"correlation_pairs"`
	MinPatternPoints   int          `yaml:"min_pattern_points" json:"min_pattern_points"`
	MinOutlierPoints   int          `yaml:"min_outlier_points" json:"min_outlier_points"`
	MinTrendPoints     int          `yaml:"min_trend_points" json:"min_trend_points"`
	SignificanceCutoff float64      `yaml:"significance_cutoff" json:"significance_cutoff"`
}

func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultRules(), err
	}

	var rules Rules
	if err := yaml.Unmarshal(content, &rules); err != nil {
		return Rules{}, err
	}

	if len(rules.CorrelationPairs) == 0 {
		return Rules{}, errors.New("no correlation pairs configured")
	}

	defaults := DefaultRules()
	if rules.MinPatternPoints <= 0 {
		rules.MinPatternPoints = defaults.MinPatternPoints
	}
	if rules.MinOutlierPoints <= 0 {
		rules.MinOutlierPoints = defaults.MinOutlierPoints
	}
	if rules.MinTrendPoints <= 0 {
		rules.MinTrendPoints = defaults.MinTrendPoints
	}
	if rules.SignificanceCutoff <= 0 {
		rules.SignificanceCutoff = defaults.SignificanceCutoff
	}

	return rules, nil
}

func DefaultRules() Rules {
	return Rules{
		CorrelationPairs: []MetricPair{
			{Metric1: "sleep_hours", Metric1Type: "sleep", Metric2: "steps", Metric2Type: "activity"},
			{Metric1: "sleep_hours", Metric1Type: "sleep", Metric2: "mood_score", Metric2Type: "mood"},
			{Metric1: "steps", Metric1Type: "activity", Metric2: "energy_level", Metric2Type: "mood"},
			{Metric1: "resting_heart_rate", Metric1Type: "cardiovascular", Metric2: "sleep_hours", Metric2Type: "sleep"},
		},
		MinPatternPoints:   7,
		MinOutlierPoints:   5,
		MinTrendPoints:     7,
		SignificanceCutoff: 0.05,
	}
}
