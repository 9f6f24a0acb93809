package healthdata

import (
	"time"

	"github.com/lumina-health/platform/pkg/common/models"
)

// Row types for the four source streams. The mobile/web clients write these
// tables; the analysis engine only ever reads them.

type DeviceReadingRow struct {
	ID         string    `gorm:"primaryKey;column:id"`
	SubjectID  string    `gorm:"column:subject_id;index"`
	RecordedAt time.Time `gorm:"column:recorded_at;index"`
	MetricType string    `gorm:"column:metric_type"`
	Value      float64   `gorm:"column:value"`
	Unit       string    `gorm:"column:unit"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (DeviceReadingRow) TableName() string {
	return "device_readings"
}

type DailySummaryRow struct {
	ID               string    `gorm:"primaryKey;column:id"`
	SubjectID        string    `gorm:"column:subject_id;index"`
	Date             time.Time `gorm:"column:date;index"`
	SleepHours       *float64  `gorm:"column:sleep_hours"`
	Steps            *float64  `gorm:"column:steps"`
	RestingHeartRate *float64  `gorm:"column:resting_heart_rate"`
	ActiveMinutes    *float64  `gorm:"column:active_minutes"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (DailySummaryRow) TableName() string {
	return "daily_summaries"
}

type CycleRecordRow struct {
	ID              string     `gorm:"primaryKey;column:id"`
	SubjectID       string     `gorm:"column:subject_id;index"`
	StartDate       time.Time  `gorm:"column:start_date;index"`
	EndDate         *time.Time `gorm:"column:end_date"`
	CycleLengthDays *int       `gorm:"column:cycle_length_days"`
	FlowIntensity   string     `gorm:"column:flow_intensity"`
	Phase           string     `gorm:"column:phase"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
}

func (CycleRecordRow) TableName() string {
	return "cycle_records"
}

type SymptomLogRow struct {
	ID          string    `gorm:"primaryKey;column:id"`
	SubjectID   string    `gorm:"column:subject_id;index"`
	LoggedAt    time.Time `gorm:"column:logged_at;index"`
	Symptom     string    `gorm:"column:symptom"`
	Severity    *float64  `gorm:"column:severity"`
	MoodScore   *float64  `gorm:"column:mood_score"`
	EnergyLevel *float64  `gorm:"column:energy_level"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (SymptomLogRow) TableName() string {
	return "symptom_logs"
}

func (r *DeviceReadingRow) toDomain() models.DeviceReading {
	return models.DeviceReading{
		ID:         r.ID,
		SubjectID:  r.SubjectID,
		RecordedAt: r.RecordedAt,
		MetricType: r.MetricType,
		Value:      r.Value,
		Unit:       r.Unit,
	}
}

func (r *DailySummaryRow) toDomain() models.DailySummary {
	return models.DailySummary{
		ID:               r.ID,
		SubjectID:        r.SubjectID,
		Date:             r.Date,
		SleepHours:       r.SleepHours,
		Steps:            r.Steps,
		RestingHeartRate: r.RestingHeartRate,
		ActiveMinutes:    r.ActiveMinutes,
	}
}

func (r *CycleRecordRow) toDomain() models.CycleRecord {
	return models.CycleRecord{
		ID:              r.ID,
		SubjectID:       r.SubjectID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		CycleLengthDays: r.CycleLengthDays,
		FlowIntensity:   r.FlowIntensity,
		Phase:           r.Phase,
	}
}

func (r *SymptomLogRow) toDomain() models.SymptomLog {
	return models.SymptomLog{
		ID:          r.ID,
		SubjectID:   r.SubjectID,
		LoggedAt:    r.LoggedAt,
		Symptom:     r.Symptom,
		Severity:    r.Severity,
		MoodScore:   r.MoodScore,
		EnergyLevel: r.EnergyLevel,
	}
}
