package models

import (
	"time"

	"github.com/google/uuid"
)

// Session types
const (
	SessionTypeFullAnalysis     = "full_analysis"
	SessionTypeTargetedAnalysis = "targeted_analysis"
	SessionTypePatternDetection = "pattern_detection"
)

// Session processing status
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Timeframe periods
const (
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
	PeriodAll     = "all"
)

// Correlation strength bands
const (
	StrengthVeryWeak   = "very_weak"
	StrengthWeak       = "weak"
	StrengthModerate   = "moderate"
	StrengthStrong     = "strong"
	StrengthVeryStrong = "very_strong"
)

// Correlation / trend direction
const (
	DirectionPositive   = "positive"
	DirectionNegative   = "negative"
	DirectionIncreasing = "increasing"
	DirectionDecreasing = "decreasing"
	DirectionStable     = "stable"
)

// Health impact of a detected pattern
const (
	ImpactPositive = "positive"
	ImpactNegative = "negative"
	ImpactNeutral  = "neutral"
	ImpactMixed    = "mixed"
)

// Clinical relevance / meaning
const (
	RelevanceHigh     = "high"
	RelevanceModerate = "moderate"
	RelevanceLow      = "low"
	RelevanceUnclear  = "unclear"
)

// Anomaly severity
const (
	SeverityLow      = "low"
	SeverityModerate = "moderate"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Anomaly urgency
const (
	UrgencyImmediate   = "immediate"
	UrgencyWithinWeek  = "within_week"
	UrgencyWithinMonth = "within_month"
	UrgencyRoutine     = "routine"
)

// Anomaly types
const (
	AnomalyOutlier      = "outlier"
	AnomalyTrendChange  = "trend_change"
	AnomalyPatternBreak = "pattern_break"
	AnomalyMissingData  = "missing_data"
)

// Event rides the platform bus; the analysis engine publishes lifecycle
// events so schedulers and notification services can react.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}

// AnalysisScope selects which source streams an analysis run may read.
type AnalysisScope struct {
	Wearable       bool     `json:"wearable"`
	LabResults     bool     `json:"lab_results"`
	MenstrualCycle bool     `json:"menstrual_cycle"`
	Symptoms       bool     `json:"symptoms"`
	Medications    bool     `json:"medications"`
	CustomMetrics  []string `json:"custom_metrics,omitempty"`
}

// DataSources lists the flagged source categories in a stable order.
func (s AnalysisScope) DataSources() []string {
	var sources []string
	if s.Wearable {
		sources = append(sources, "wearable")
	}
	if s.LabResults {
		sources = append(sources, "lab_results")
	}
	if s.MenstrualCycle {
		sources = append(sources, "menstrual_cycle")
	}
	if s.Symptoms {
		sources = append(sources, "symptoms")
	}
	if s.Medications {
		sources = append(sources, "medications")
	}
	return sources
}

// AnalysisTimeframe bounds one analysis run. StartDate must not be after
// EndDate; fetched records fall within [StartDate, EndDate] inclusive.
type AnalysisTimeframe struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Period    string    `json:"period"`
}

type AnalysisRequest struct {
	SessionType string            `json:"session_type"`
	Scope       AnalysisScope     `json:"scope"`
	Timeframe   AnalysisTimeframe `json:"timeframe"`
	SubjectID   string            `json:"subject_id"`
}

// AnalysisSession is the persisted unit of one engine run.
type AnalysisSession struct {
	ID                   uuid.UUID         `json:"id"`
	SubjectID            string            `json:"subject_id"`
	SessionType          string            `json:"session_type"`
	ModelVersion         string            `json:"model_version"`
	InputDataSources     []string          `json:"input_data_sources"`
	Scope                AnalysisScope     `json:"scope"`
	Timeframe            AnalysisTimeframe `json:"timeframe"`
	ProcessingStatus     string            `json:"processing_status"`
	KeyFindings          []string          `json:"key_findings"`
	TrendsIdentified     []Trend           `json:"trends_identified,omitempty"`
	ConfidenceScore      float64           `json:"confidence_score"`
	DataCompleteness     float64           `json:"data_completeness"`
	ProcessingDurationMs int64             `json:"processing_duration_ms"`
	ErrorDetails         string            `json:"error_details,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
	CompletedAt          *time.Time        `json:"completed_at,omitempty"`
}

// MetricRef names one side of a correlation.
type MetricRef struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type HealthPattern struct {
	ID                uuid.UUID `json:"id"`
	SessionID         uuid.UUID `json:"session_id"`
	PatternType       string    `json:"pattern_type"`
	PatternCategory   string    `json:"pattern_category"`
	PatternName       string    `json:"pattern_name"`
	Description       string    `json:"description"`
	Strength          float64   `json:"strength"`
	TimePeriod        string    `json:"time_period"`
	PrimaryMetrics    []string  `json:"primary_metrics"`
	HealthImpact      string    `json:"health_impact"`
	ClinicalRelevance string    `json:"clinical_relevance"`
	Actionability     string    `json:"actionability"`
	CreatedAt         time.Time `json:"created_at"`
}

// HealthCorrelation records a statistically notable pairwise relationship.
// SignificanceProxy is a thresholded t-statistic stand-in, not a p-value.
type HealthCorrelation struct {
	ID                uuid.UUID `json:"id"`
	SessionID         uuid.UUID `json:"session_id"`
	Metric1           MetricRef `json:"metric1"`
	Metric2           MetricRef `json:"metric2"`
	Coefficient       float64   `json:"coefficient"`
	SignificanceProxy float64   `json:"significance_proxy"`
	SampleSize        int       `json:"sample_size"`
	Strength          string    `json:"strength"`
	Direction         string    `json:"direction"`
	ClinicalMeaning   string    `json:"clinical_meaning"`
	Insights          string    `json:"insights"`
	CreatedAt         time.Time `json:"created_at"`
}

type HealthAnomaly struct {
	ID                uuid.UUID `json:"id"`
	SessionID         uuid.UUID `json:"session_id"`
	MetricName        string    `json:"metric_name"`
	MetricType        string    `json:"metric_type"`
	AnomalyType       string    `json:"anomaly_type"`
	DetectedValue     float64   `json:"detected_value"`
	ExpectedValue     float64   `json:"expected_value"`
	AnomalyScore      float64   `json:"anomaly_score"`
	Severity          string    `json:"severity"`
	Urgency           string    `json:"urgency"`
	PotentialCauses   []string  `json:"potential_causes"`
	RecommendedAction string    `json:"recommended_action"`
	CreatedAt         time.Time `json:"created_at"`
}

// Trend is attached to the session rather than persisted on its own.
type Trend struct {
	Metric            string  `json:"metric"`
	Direction         string  `json:"direction"`
	Strength          float64 `json:"strength"`
	SignificanceProxy float64 `json:"significance_proxy"`
}

// AnalysisResults is the composite read-back view of a session.
// Recommendations are derived from the stored children at read time.
type AnalysisResults struct {
	Session         AnalysisSession     `json:"session"`
	Patterns        []HealthPattern     `json:"patterns"`
	Correlations    []HealthCorrelation `json:"correlations"`
	Anomalies       []HealthAnomaly     `json:"anomalies"`
	Recommendations []string            `json:"recommendations"`
}

// Source records. Optional measurements are pointers so a missing value is
// distinguishable from zero.

type DeviceReading struct {
	ID         string    `json:"id"`
	SubjectID  string    `json:"subject_id"`
	RecordedAt time.Time `json:"recorded_at"`
	MetricType string    `json:"metric_type"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit,omitempty"`
}

type DailySummary struct {
	ID               string    `json:"id"`
	SubjectID        string    `json:"subject_id"`
	Date             time.Time `json:"date"`
	SleepHours       *float64  `json:"sleep_hours,omitempty"`
	Steps            *float64  `json:"steps,omitempty"`
	RestingHeartRate *float64  `json:"resting_heart_rate,omitempty"`
	ActiveMinutes    *float64  `json:"active_minutes,omitempty"`
}

type CycleRecord struct {
	ID              string     `json:"id"`
	SubjectID       string     `json:"subject_id"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	CycleLengthDays *int       `json:"cycle_length_days,omitempty"`
	FlowIntensity   string     `json:"flow_intensity,omitempty"`
	Phase           string     `json:"phase,omitempty"`
}

type SymptomLog struct {
	ID          string    `json:"id"`
	SubjectID   string    `json:"subject_id"`
	LoggedAt    time.Time `json:"logged_at"`
	Symptom     string    `json:"symptom,omitempty"`
	Severity    *float64  `json:"severity,omitempty"`
	MoodScore   *float64  `json:"mood_score,omitempty"`
	EnergyLevel *float64  `json:"energy_level,omitempty"`
}

// HealthDataset is the ephemeral, in-memory output of the aggregator.
// Collections for sources outside the scope stay empty.
type HealthDataset struct {
	SubjectID      string            `json:"subject_id"`
	Timeframe      AnalysisTimeframe `json:"timeframe"`
	DeviceData     []DeviceReading   `json:"device_data"`
	DailySummaries []DailySummary    `json:"daily_summaries"`
	CycleRecords   []CycleRecord     `json:"cycle_records"`
	SymptomLogs    []SymptomLog      `json:"symptom_logs"`
}

// TotalDataPoints sums the sizes of all fetched collections.
func (d *HealthDataset) TotalDataPoints() int {
	return len(d.DeviceData) + len(d.DailySummaries) + len(d.CycleRecords) + len(d.SymptomLogs)
}
