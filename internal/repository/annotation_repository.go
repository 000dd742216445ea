package repository

import (
	"github.com/yukikurage/annotation-workflow-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAnnotationRepository is a GORM implementation of AnnotationRepository
type GormAnnotationRepository struct {
	db *gorm.DB
}

// NewAnnotationRepository creates a new AnnotationRepository
func NewAnnotationRepository(db *gorm.DB) AnnotationRepository {
	return &GormAnnotationRepository{db: db}
}

// Create creates an annotation
func (r *GormAnnotationRepository) Create(annotation *models.Annotation) error {
	return r.db.Omit(clause.Associations).Create(annotation).Error
}

// CreateIncident creates a safety incident
func (r *GormAnnotationRepository) CreateIncident(incident *models.SafetyIncident) error {
	return r.db.Omit(clause.Associations).Create(incident).Error
}

// ListByAssignmentID lists the annotations of an assignment, oldest first
func (r *GormAnnotationRepository) ListByAssignmentID(assignmentID uint64) ([]models.Annotation, error) {
	var annotations []models.Annotation
	err := r.db.Where("assignment_id = ?", assignmentID).
		Order("created_at ASC, id ASC").
		Find(&annotations).Error
	if err != nil {
		return nil, err
	}
	return annotations, nil
}
