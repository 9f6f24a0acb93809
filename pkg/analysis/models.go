package analysis

import (
	"time"

	"github.com/google/uuid"
	"github.com/lumina-health/platform/pkg/common/models"
	"gorm.io/datatypes"
)

type SessionRow struct {
	ID                   uuid.UUID                               `gorm:"type:uuid;primaryKey;column:id"`
	SubjectID            string                                  `gorm:"column:subject_id;index"`
	SessionType          string                                  `gorm:"column:session_type"`
	ModelVersion         string                                  `gorm:"column:model_version"`
	InputDataSources     datatypes.JSONSlice[string]             `gorm:"column:input_data_sources"`
	Scope                datatypes.JSONType[models.AnalysisScope] `gorm:"column:scope"`
	StartDate            time.Time                               `gorm:"column:start_date"`
	EndDate              time.Time                               `gorm:"column:end_date"`
	Period               string                                  `gorm:"column:period"`
	ProcessingStatus     string                                  `gorm:"column:processing_status"`
	KeyFindings          datatypes.JSONSlice[string]             `gorm:"column:key_findings"`
	TrendsIdentified     datatypes.JSONSlice[models.Trend]       `gorm:"column:trends_identified"`
	ConfidenceScore      float64                                 `gorm:"column:confidence_score"`
	DataCompleteness     float64                                 `gorm:"column:data_completeness"`
	ProcessingDurationMs int64                                   `gorm:"column:processing_duration_ms"`
	ErrorDetails         string                                  `gorm:"column:error_details"`
	CreatedAt            time.Time                               `gorm:"column:created_at"`
	UpdatedAt            time.Time                               `gorm:"column:updated_at"`
	CompletedAt          *time.Time                              `gorm:"column:completed_at"`
}

func (SessionRow) TableName() string {
	return "analysis_sessions"
}

type PatternRow struct {
	ID                uuid.UUID                   `gorm:"type:uuid;primaryKey;column:id"`
	SessionID         uuid.UUID                   `gorm:"type:uuid;column:session_id;index"`
	PatternType       string                      `gorm:"column:pattern_type"`
	PatternCategory   string                      `gorm:"column:pattern_category"`
	PatternName       string                      `gorm:"column:pattern_name"`
	Description       string                      `gorm:"column:description"`
	Strength          float64                     `gorm:"column:strength"`
	TimePeriod        string                      `gorm:"column:time_period"`
	PrimaryMetrics    datatypes.JSONSlice[string] `gorm:"column:primary_metrics"`
	HealthImpact      string                      `gorm:"column:health_impact"`
	ClinicalRelevance string                      `gorm:"column:clinical_relevance"`
	Actionability     string                      `gorm:"column:actionability"`
	CreatedAt         time.Time                   `gorm:"column:created_at"`
}

func (PatternRow) TableName() string {
	return "health_patterns"
}

type CorrelationRow struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;column:id"`
	SessionID         uuid.UUID `gorm:"type:uuid;column:session_id;index"`
	Metric1Name       string    `gorm:"column:metric1_name"`
	Metric1Type       string    `gorm:"column:metric1_type"`
	Metric2Name       string    `gorm:"column:metric2_name"`
	Metric2Type       string    `gorm:"column:metric2_type"`
	Coefficient       float64   `gorm:"column:coefficient"`
	SignificanceProxy float64   `gorm:"column:significance_proxy"`
	SampleSize        int       `gorm:"column:sample_size"`
	Strength          string    `gorm:"column:strength"`
	Direction         string    `gorm:"column:direction"`
	ClinicalMeaning   string    `gorm:"column:clinical_meaning"`
	Insights          string    `gorm:"column:insights"`
	CreatedAt         time.Time `gorm:"column:created_at"`
}

func (CorrelationRow) TableName() string {
	return "health_correlations"
}

type AnomalyRow struct {
	ID                uuid.UUID                   `gorm:"type:uuid;primaryKey;column:id"`
	SessionID         uuid.UUID                   `gorm:"type:uuid;column:session_id;index"`
	MetricName        string                      `gorm:"column:metric_name"`
	MetricType        string                      `gorm:"column:metric_type"`
	AnomalyType       string                      `gorm:"column:anomaly_type"`
	DetectedValue     float64                     `gorm:"column:detected_value"`
	ExpectedValue     float64                     `gorm:"column:expected_value"`
	AnomalyScore      float64                     `gorm:"column:anomaly_score"`
	Severity          string                      `gorm:"column:severity"`
	Urgency           string                      `gorm:"column:urgency"`
	PotentialCauses   datatypes.JSONSlice[string] `gorm:"column:potential_causes"`
	RecommendedAction string                      `gorm:"column:recommended_action"`
	CreatedAt         time.Time                   `gorm:"column:created_at"`
}

func (AnomalyRow) TableName() string {
	return "health_anomalies"
}

func (r *SessionRow) toDomain() models.AnalysisSession {
	return models.AnalysisSession{
		ID:               r.ID,
		SubjectID:        r.SubjectID,
		SessionType:      r.SessionType,
		ModelVersion:     r.ModelVersion,
		InputDataSources: r.InputDataSources,
		Scope:            r.Scope.Data(),
		Timeframe: models.AnalysisTimeframe{
			StartDate: r.StartDate,
			EndDate:   r.EndDate,
			Period:    r.Period,
		},
		ProcessingStatus:     r.ProcessingStatus,
		KeyFindings:          r.KeyFindings,
		TrendsIdentified:     r.TrendsIdentified,
		ConfidenceScore:      r.ConfidenceScore,
		DataCompleteness:     r.DataCompleteness,
		ProcessingDurationMs: r.ProcessingDurationMs,
		ErrorDetails:         r.ErrorDetails,
		CreatedAt:            r.CreatedAt,
		CompletedAt:          r.CompletedAt,
	}
}

func sessionToRow(s models.AnalysisSession) *SessionRow {
	return &SessionRow{
		ID:                   s.ID,
		SubjectID:            s.SubjectID,
		SessionType:          s.SessionType,
		ModelVersion:         s.ModelVersion,
		InputDataSources:     datatypes.NewJSONSlice(s.InputDataSources),
		Scope:                datatypes.NewJSONType(s.Scope),
		StartDate:            s.Timeframe.StartDate,
		EndDate:              s.Timeframe.EndDate,
		Period:               s.Timeframe.Period,
		ProcessingStatus:     s.ProcessingStatus,
		KeyFindings:          datatypes.NewJSONSlice(s.KeyFindings),
		TrendsIdentified:     datatypes.NewJSONSlice(s.TrendsIdentified),
		ConfidenceScore:      s.ConfidenceScore,
		DataCompleteness:     s.DataCompleteness,
		ProcessingDurationMs: s.ProcessingDurationMs,
		ErrorDetails:         s.ErrorDetails,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.CreatedAt,
		CompletedAt:          s.CompletedAt,
	}
}

func (r *PatternRow) toDomain() models.HealthPattern {
	return models.HealthPattern{
		ID:                r.ID,
		SessionID:         r.SessionID,
		PatternType:       r.PatternType,
		PatternCategory:   r.PatternCategory,
		PatternName:       r.PatternName,
		Description:       r.Description,
		Strength:          r.Strength,
		TimePeriod:        r.TimePeriod,
		PrimaryMetrics:    r.PrimaryMetrics,
		HealthImpact:      r.HealthImpact,
		ClinicalRelevance: r.ClinicalRelevance,
		Actionability:     r.Actionability,
		CreatedAt:         r.CreatedAt,
	}
}

func patternToRow(p models.HealthPattern) *PatternRow {
	return &PatternRow{
		ID:                p.ID,
		SessionID:         p.SessionID,
		PatternType:       p.PatternType,
		PatternCategory:   p.PatternCategory,
		PatternName:       p.PatternName,
		Description:       p.Description,
		Strength:          p.Strength,
		TimePeriod:        p.TimePeriod,
		PrimaryMetrics:    datatypes.NewJSONSlice(p.PrimaryMetrics),
		HealthImpact:      p.HealthImpact,
		ClinicalRelevance: p.ClinicalRelevance,
		Actionability:     p.Actionability,
		CreatedAt:         p.CreatedAt,
	}
}

func (r *CorrelationRow) toDomain() models.HealthCorrelation {
	return models.HealthCorrelation{
		ID:                r.ID,
		SessionID:         r.SessionID,
		Metric1:           models.MetricRef{Name: r.Metric1Name, Type: r.Metric1Type},
		Metric2:           models.MetricRef{Name: r.Metric2Name, Type: r.Metric2Type},
		Coefficient:       r.Coefficient,
		SignificanceProxy: r.SignificanceProxy,
		SampleSize:        r.SampleSize,
		Strength:          r.Strength,
		Direction:         r.Direction,
		ClinicalMeaning:   r.ClinicalMeaning,
		Insights:          r.Insights,
		CreatedAt:         r.CreatedAt,
	}
}

func correlationToRow(c models.HealthCorrelation) *CorrelationRow {
	return &CorrelationRow{
		ID:                c.ID,
		SessionID:         c.SessionID,
		Metric1Name:       c.Metric1.Name,
		Metric1Type:       c.Metric1.Type,
		Metric2Name:       c.Metric2.Name,
		Metric2Type:       c.Metric2.Type,
		Coefficient:       c.Coefficient,
		SignificanceProxy: c.SignificanceProxy,
		SampleSize:        c.SampleSize,
		Strength:          c.Strength,
		Direction:         c.Direction,
		ClinicalMeaning:   c.ClinicalMeaning,
		Insights:          c.Insights,
		CreatedAt:         c.CreatedAt,
	}
}

func (r *AnomalyRow) toDomain() models.HealthAnomaly {
	return models.HealthAnomaly{
		ID:                r.ID,
		SessionID:         r.SessionID,
		MetricName:        r.MetricName,
		MetricType:        r.MetricType,
		AnomalyType:       r.AnomalyType,
		DetectedValue:     r.DetectedValue,
		ExpectedValue:     r.ExpectedValue,
		AnomalyScore:      r.AnomalyScore,
		Severity:          r.Severity,
		Urgency:           r.Urgency,
		PotentialCauses:   r.PotentialCauses,
		RecommendedAction: r.RecommendedAction,
		CreatedAt:         r.CreatedAt,
	}
}

func anomalyToRow(a models.HealthAnomaly) *AnomalyRow {
	return &AnomalyRow{
		ID:                a.ID,
		SessionID:         a.SessionID,
		MetricName:        a.MetricName,
		MetricType:        a.MetricType,
		AnomalyType:       a.AnomalyType,
		DetectedValue:     a.DetectedValue,
		ExpectedValue:     a.ExpectedValue,
		AnomalyScore:      a.AnomalyScore,
		Severity:          a.Severity,
		Urgency:           a.Urgency,
		PotentialCauses:   datatypes.NewJSONSlice(a.PotentialCauses),
		RecommendedAction: a.RecommendedAction,
		CreatedAt:         a.CreatedAt,
	}
}
