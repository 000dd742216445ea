package repository

import (
	"github.com/yukikurage/annotation-workflow-api/internal/models"
	"gorm.io/gorm"
)

// GormStatsRepository is a GORM implementation of StatsRepository
type GormStatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &GormStatsRepository{db: db}
}

// CountAnnotations counts all annotations
func (r *GormStatsRepository) CountAnnotations() (int64, error) {
	var count int64
	err := r.db.Model(&models.Annotation{}).Count(&count).Error
	return count, err
}

// CountAssignments counts assignments, restricted to status when it is not empty
func (r *GormStatsRepository) CountAssignments(status models.AssignmentStatus) (int64, error) {
	var count int64
	query := r.db.Model(&models.TaskAssignment{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

// CountSafetyIncidents counts all safety incidents
func (r *GormStatsRepository) CountSafetyIncidents() (int64, error) {
	var count int64
	err := r.db.Model(&models.SafetyIncident{}).Count(&count).Error
	return count, err
}
