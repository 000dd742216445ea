package repository

import (
	"github.com/yukikurage/annotation-workflow-api/internal/database"
	"github.com/yukikurage/annotation-workflow-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAuditRepository is a GORM implementation of AuditRepository
type GormAuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &GormAuditRepository{db: db}
}

// Append inserts a new audit entry
func (r *GormAuditRepository) Append(entry *models.AuditLog) error {
	return r.db.Omit(clause.Associations).Create(entry).Error
}

// List retrieves audit entries with filtering and pagination, newest first
func (r *GormAuditRepository) List(filter AuditFilter) ([]models.AuditLog, int64, error) {
	var entries []models.AuditLog

	query := r.db.Model(&models.AuditLog{})

	// Apply filters
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}

	// Count total
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get paginated results
	err := query.
		Order("created_at DESC, id DESC").
		Scopes(database.Paginate(filter.Pagination)).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
