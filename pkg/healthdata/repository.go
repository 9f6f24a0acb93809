package healthdata

import (
	"context"
	"fmt"
	"time"

	"github.com/lumina-health/platform/pkg/common/models"
	"gorm.io/gorm"
)

// Repository reads the four source streams. It never writes them.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&DeviceReadingRow{}, &DailySummaryRow{}, &CycleRecordRow{}, &SymptomLogRow{})
}

func (r *Repository) FetchDeviceData(ctx context.Context, subjectID string, start, end time.Time) ([]models.DeviceReading, error) {
	var rows []DeviceReadingRow
	result := r.db.WithContext(ctx).
		Where("subject_id = ? AND recorded_at >= ? AND recorded_at <= ?", subjectID, start, end).
		Order("recorded_at asc").
		Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("fetching device data: %w", result.Error)
	}
	readings := make([]models.DeviceReading, 0, len(rows))
	for i := range rows {
		readings = append(readings, rows[i].toDomain())
	}
	return readings, nil
}

func (r *Repository) FetchDailySummaries(ctx context.Context, subjectID string, start, end time.Time) ([]models.DailySummary, error) {
	var rows []DailySummaryRow
	result := r.db.WithContext(ctx).
		Where("subject_id = ? AND date >= ? AND date <= ?", subjectID, start, end).
		Order("date asc").
		Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("fetching daily summaries: %w", result.Error)
	}
	summaries := make([]models.DailySummary, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, rows[i].toDomain())
	}
	return summaries, nil
}

func (r *Repository) FetchCycles(ctx context.Context, subjectID string, start, end time.Time) ([]models.CycleRecord, error) {
	var rows []CycleRecordRow
	result := r.db.WithContext(ctx).
		Where("subject_id = ? AND start_date >= ? AND start_date <= ?", subjectID, start, end).
		Order("start_date asc").
		Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("fetching cycle records: %w", result.Error)
	}
	cycles := make([]models.CycleRecord, 0, len(rows))
	for i := range rows {
		cycles = append(cycles, rows[i].toDomain())
	}
	return cycles, nil
}

func (r *Repository) FetchSymptomLogs(ctx context.Context, subjectID string, start, end time.Time) ([]models.SymptomLog, error) {
	var rows []SymptomLogRow
	result := r.db.WithContext(ctx).
		Where("subject_id = ? AND logged_at >= ? AND logged_at <= ?", subjectID, start, end).
		Order("logged_at asc").
		Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("fetching symptom logs: %w", result.Error)
	}
	logs := make([]models.SymptomLog, 0, len(rows))
	for i := range rows {
		logs = append(logs, rows[i].toDomain())
	}
	return logs, nil
}
