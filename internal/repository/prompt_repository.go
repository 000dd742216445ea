package repository

import (
	"github.com/yukikurage/annotation-workflow-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPromptRepository is a GORM implementation of PromptRepository
type GormPromptRepository struct {
	db *gorm.DB
}

// NewPromptRepository creates a new PromptRepository
func NewPromptRepository(db *gorm.DB) PromptRepository {
	return &GormPromptRepository{db: db}
}

// Create creates a prompt row; outputs are written separately by CreateOutputs
func (r *GormPromptRepository) Create(prompt *models.Prompt) error {
	return r.db.Omit(clause.Associations).Create(prompt).Error
}

// CreateOutputs creates model outputs that already carry their prompt ID
func (r *GormPromptRepository) CreateOutputs(outputs []models.ModelOutput) error {
	if len(outputs) == 0 {
		return nil
	}
	return r.db.Create(&outputs).Error
}

// FindByID finds a prompt by ID with optional preloading
func (r *GormPromptRepository) FindByID(id uint64, preload ...string) (*models.Prompt, error) {
	var prompt models.Prompt
	query := r.db

	for _, p := range preload {
		if p == "Outputs" {
			query = query.Preload(p, orderByID("model_outputs"))
			continue
		}
		query = query.Preload(p)
	}

	if err := query.First(&prompt, id).Error; err != nil {
		return nil, err
	}

	return &prompt, nil
}

// Exists reports whether a prompt with the ID exists
func (r *GormPromptRepository) Exists(id uint64) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Prompt{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func orderByID(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".id ASC")
	}
}
