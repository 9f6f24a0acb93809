// Package timeseries holds the pure statistical primitives used by the
// analysis engine: Pearson correlation, z-score outlier detection and
// linear trend direction. No I/O, no state.
package timeseries

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInsufficientData = errors.New("insufficient data points")

// Significance proxy values. These are thresholded t-statistic stand-ins,
// deliberately simplified; they are not p-values and the engine never
// presents them as such.
const (
	ProxySignificant    = 0.05
	ProxyNotSignificant = 0.10
)

// Point is one dated observation of a metric.
type Point struct {
	Date  time.Time
	Value float64
}

// CorrelationStats is the result of one pairwise correlation.
type CorrelationStats struct {
	Coefficient       float64
	SignificanceProxy float64
	SampleSize        int
}

// Correlate computes Pearson's r for two aligned series. Callers drop
// unpaired or missing observations before calling; fewer than 3 remaining
// pairs is an error. Constant series correlate to 0 with proxy 1 rather
// than dividing by zero.
func Correlate(x, y []float64) (CorrelationStats, error) {
	n := len(x)
	if n != len(y) {
		return CorrelationStats{}, fmt.Errorf("series length mismatch: %d vs %d", n, len(y))
	}
	if n < 3 {
		return CorrelationStats{}, fmt.Errorf("%w: need at least 3 pairs, got %d", ErrInsufficientData, n)
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var numerator, denomX, denomY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		numerator += dx * dy
		denomX += dx * dx
		denomY += dy * dy
	}

	if denomX == 0 || denomY == 0 {
		return CorrelationStats{Coefficient: 0, SignificanceProxy: 1, SampleSize: n}, nil
	}

	r := numerator / math.Sqrt(denomX*denomY)

	proxy := ProxyNotSignificant
	if math.Abs(r) >= 1.0 {
		proxy = ProxySignificant
	} else {
		t := r * math.Sqrt(float64(n-2)/(1-r*r))
		if math.Abs(t) > 2 {
			proxy = ProxySignificant
		}
	}

	return CorrelationStats{Coefficient: r, SignificanceProxy: proxy, SampleSize: n}, nil
}

// ClassifyStrength buckets |coefficient| into the standard bands: very_weak
// below 0.3, then escalating at 0.3, 0.5 and 0.7, with very_strong reserved
// for near-perfect relationships.
func ClassifyStrength(coefficient float64) string {
	abs := math.Abs(coefficient)
	switch {
	case abs >= 0.9:
		return "very_strong"
	case abs >= 0.7:
		return "strong"
	case abs >= 0.5:
		return "moderate"
	case abs >= 0.3:
		return "weak"
	default:
		return "very_weak"
	}
}

// Outlier is one observation flagged by DetectOutliers.
type Outlier struct {
	Index    int
	Value    float64
	Expected float64
	Score    float64
}

// DetectOutliers flags values whose z-score magnitude exceeds 2, using the
// population standard deviation. Score is |z|/3 clamped to 1. A series with
// no variance yields no outliers.
func DetectOutliers(values []float64) ([]Outlier, error) {
	n := len(values)
	if n < 5 {
		return nil, fmt.Errorf("%w: need at least 5 values, got %d", ErrInsufficientData, n)
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	var variance float64
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(n)
	stdDev := math.Sqrt(variance)

	if stdDev == 0 {
		return nil, nil
	}

	var outliers []Outlier
	for i, v := range values {
		z := math.Abs(v-mean) / stdDev
		if z > 2 {
			score := z / 3
			if score > 1 {
				score = 1
			}
			outliers = append(outliers, Outlier{Index: i, Value: v, Expected: mean, Score: score})
		}
	}
	return outliers, nil
}

// TrendStats describes the directional movement of one metric over time.
type TrendStats struct {
	Direction         string
	Strength          float64
	SignificanceProxy float64
}

// Trend correlates a series against its chronological index. Direction is
// increasing above 0.1, decreasing below -0.1, stable between. Two points
// are the floor here; callers wanting a meaningful trend enforce their own
// larger minimums.
func Trend(series []Point) (TrendStats, error) {
	n := len(series)
	if n < 2 {
		return TrendStats{}, fmt.Errorf("%w: need at least 2 points, got %d", ErrInsufficientData, n)
	}

	index := make([]float64, n)
	values := make([]float64, n)
	for i, p := range series {
		index[i] = float64(i)
		values[i] = p.Value
	}

	var stats CorrelationStats
	if n < 3 {
		// Two points always define a line; classify on slope sign alone.
		slope := values[1] - values[0]
		stats = CorrelationStats{SignificanceProxy: ProxyNotSignificant, SampleSize: n}
		if slope > 0 {
			stats.Coefficient = 1
		} else if slope < 0 {
			stats.Coefficient = -1
		}
	} else {
		var err error
		stats, err = Correlate(index, values)
		if err != nil {
			return TrendStats{}, err
		}
	}

	direction := "stable"
	if stats.Coefficient > 0.1 {
		direction = "increasing"
	} else if stats.Coefficient < -0.1 {
		direction = "decreasing"
	}

	return TrendStats{
		Direction:         direction,
		Strength:          math.Abs(stats.Coefficient),
		SignificanceProxy: stats.SignificanceProxy,
	}, nil
}
