package timeseries

import (
	"errors"
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestCorrelatePerfectPositive(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 2*v + 3
	}

	stats, err := Correlate(x, y)
	if err != nil {
		t.Fatalf("Correlate returned error: %v", err)
	}
	if !almostEqual(stats.Coefficient, 1) {
		t.Errorf("expected coefficient 1, got %f", stats.Coefficient)
	}
	if stats.SignificanceProxy != ProxySignificant {
		t.Errorf("expected proxy %f, got %f", ProxySignificant, stats.SignificanceProxy)
	}
	if stats.SampleSize != 10 {
		t.Errorf("expected sample size 10, got %d", stats.SampleSize)
	}
}

func TestCorrelatePerfectNegative(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{10, 8, 6, 4, 2}

	stats, err := Correlate(x, y)
	if err != nil {
		t.Fatalf("Correlate returned error: %v", err)
	}
	if !almostEqual(stats.Coefficient, -1) {
		t.Errorf("expected coefficient -1, got %f", stats.Coefficient)
	}
	if stats.SignificanceProxy != ProxySignificant {
		t.Errorf("expected proxy %f, got %f", ProxySignificant, stats.SignificanceProxy)
	}
}

func TestCorrelateConstantSeries(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{7, 7, 7, 7, 7}

	stats, err := Correlate(x, y)
	if err != nil {
		t.Fatalf("Correlate returned error: %v", err)
	}
	if stats.Coefficient != 0 {
		t.Errorf("expected coefficient 0 for constant series, got %f", stats.Coefficient)
	}
	if stats.SignificanceProxy != 1 {
		t.Errorf("expected proxy 1 for constant series, got %f", stats.SignificanceProxy)
	}
}

func TestCorrelateLengthMismatch(t *testing.T) {
	if _, err := Correlate([]float64{1, 2, 3}, []float64{1, 2}); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}

func TestCorrelateTooFewPairs(t *testing.T) {
	_, err := Correlate([]float64{1, 2}, []float64{3, 4})
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestClassifyStrength(t *testing.T) {
	cases := []struct {
		coefficient float64
		expected    string
	}{
		{0.1, "very_weak"},
		{0.29, "very_weak"},
		{0.3, "weak"},
		{0.49, "weak"},
		{0.5, "moderate"},
		{0.69, "moderate"},
		{0.7, "strong"},
		{0.8, "strong"},
		{0.89, "strong"},
		{0.9, "very_strong"},
		{1.0, "very_strong"},
		{-0.85, "strong"},
		{-0.95, "very_strong"},
		{-0.4, "weak"},
	}

	for _, tc := range cases {
		if got := ClassifyStrength(tc.coefficient); got != tc.expected {
			t.Errorf("ClassifyStrength(%f) = %q, expected %q", tc.coefficient, got, tc.expected)
		}
	}
}

func TestDetectOutliersSingleSpike(t *testing.T) {
	values := []float64{7, 7, 7, 7, 7, 2, 7}

	outliers, err := DetectOutliers(values)
	if err != nil {
		t.Fatalf("DetectOutliers returned error: %v", err)
	}
	if len(outliers) != 1 {
		t.Fatalf("expected 1 outlier, got %d", len(outliers))
	}

	o := outliers[0]
	if o.Index != 5 || o.Value != 2 {
		t.Errorf("expected outlier at index 5 with value 2, got index %d value %f", o.Index, o.Value)
	}
	if !almostEqual(o.Expected, 44.0/7) {
		t.Errorf("expected mean %f, got %f", 44.0/7, o.Expected)
	}
	if o.Score <= 0 || o.Score > 1 {
		t.Errorf("score out of range: %f", o.Score)
	}
}

func TestDetectOutliersNoVariance(t *testing.T) {
	outliers, err := DetectOutliers([]float64{5, 5, 5, 5, 5})
	if err != nil {
		t.Fatalf("DetectOutliers returned error: %v", err)
	}
	if len(outliers) != 0 {
		t.Errorf("expected no outliers for flat series, got %d", len(outliers))
	}
}

func TestDetectOutliersScoreClamped(t *testing.T) {
	values := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 100}

	outliers, err := DetectOutliers(values)
	if err != nil {
		t.Fatalf("DetectOutliers returned error: %v", err)
	}
	if len(outliers) != 1 {
		t.Fatalf("expected 1 outlier, got %d", len(outliers))
	}
	if outliers[0].Score > 1 {
		t.Errorf("score must be clamped to 1, got %f", outliers[0].Score)
	}
}

func TestDetectOutliersTooFew(t *testing.T) {
	_, err := DetectOutliers([]float64{1, 2, 3, 4})
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func dailyPoints(values ...float64) []Point {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{Date: base.AddDate(0, 0, i), Value: v}
	}
	return points
}

func TestTrendIncreasing(t *testing.T) {
	stats, err := Trend(dailyPoints(1, 2, 3, 4, 5, 6, 7))
	if err != nil {
		t.Fatalf("Trend returned error: %v", err)
	}
	if stats.Direction != "increasing" {
		t.Errorf("expected increasing, got %q", stats.Direction)
	}
	if !almostEqual(stats.Strength, 1) {
		t.Errorf("expected strength 1, got %f", stats.Strength)
	}
}

func TestTrendDecreasing(t *testing.T) {
	stats, err := Trend(dailyPoints(9, 8, 7, 6, 5, 4, 3))
	if err != nil {
		t.Fatalf("Trend returned error: %v", err)
	}
	if stats.Direction != "decreasing" {
		t.Errorf("expected decreasing, got %q", stats.Direction)
	}
}

func TestTrendStable(t *testing.T) {
	stats, err := Trend(dailyPoints(5, 5, 5, 5, 5))
	if err != nil {
		t.Fatalf("Trend returned error: %v", err)
	}
	if stats.Direction != "stable" {
		t.Errorf("expected stable, got %q", stats.Direction)
	}
	if stats.Strength != 0 {
		t.Errorf("expected strength 0, got %f", stats.Strength)
	}
}

func TestTrendTwoPoints(t *testing.T) {
	stats, err := Trend(dailyPoints(1, 5))
	if err != nil {
		t.Fatalf("Trend returned error: %v", err)
	}
	if stats.Direction != "increasing" {
		t.Errorf("expected increasing, got %q", stats.Direction)
	}
	if stats.SignificanceProxy != ProxyNotSignificant {
		t.Errorf("expected proxy %f, got %f", ProxyNotSignificant, stats.SignificanceProxy)
	}
}

func TestTrendTooFewPoints(t *testing.T) {
	_, err := Trend(dailyPoints(1))
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}
