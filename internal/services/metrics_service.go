package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/annotation-workflow-api/internal/models"
	"github.com/yukikurage/annotation-workflow-api/internal/repository"
	"gorm.io/gorm"
)

// Metric is one derived statistic.
type Metric struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Unit        *string `json:"unit"`
	Description *string `json:"description"`
}

const (
	MetricAnnotationsTotal         = "annotations_total"
	MetricAssignmentCompletionRate = "assignment_completion_rate"
	MetricSafetyIncidentsTotal     = "safety_incidents_total"
)

// MetricsService computes read-only statistics over the stored entities.
type MetricsService struct{}

// NewMetricsService creates a new MetricsService
func NewMetricsService() *MetricsService {
	return &MetricsService{}
}

// ComputeMetrics returns annotations_total, assignment_completion_rate and
// safety_incidents_total, in that order. The counts run as separate queries
// without a transaction, so the result is a best-effort snapshot.
func (s *MetricsService) ComputeMetrics(ctx context.Context, db *gorm.DB) ([]Metric, error) {
	stats := repository.NewStatsRepository(db.WithContext(ctx))

	annotations, err := stats.CountAnnotations()
	if err != nil {
		return nil, fmt.Errorf("failed to count annotations: %w", err)
	}

	completed, err := stats.CountAssignments(models.AssignmentStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed assignments: %w", err)
	}

	total, err := stats.CountAssignments("")
	if err != nil {
		return nil, fmt.Errorf("failed to count assignments: %w", err)
	}

	incidents, err := stats.CountSafetyIncidents()
	if err != nil {
		return nil, fmt.Errorf("failed to count safety incidents: %w", err)
	}

	return []Metric{
		{
			Name:        MetricAnnotationsTotal,
			Value:       float64(annotations),
			Description: strPtr("Total annotations submitted"),
		},
		{
			Name:        MetricAssignmentCompletionRate,
			Value:       completionRate(completed, total),
			Unit:        strPtr("%"),
			Description: strPtr("Percentage of assignments marked as completed"),
		},
		{
			Name:        MetricSafetyIncidentsTotal,
			Value:       float64(incidents),
			Description: strPtr("Total safety incidents flagged by annotators"),
		},
	}, nil
}

// completionRate is 0 when there are no assignments.
func completionRate(completed, total int64) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(completed) / float64(total) * 100
}

func strPtr(s string) *string {
	return &s
}
