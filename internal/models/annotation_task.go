package models

import (
	"time"

	"github.com/yukikurage/annotation-workflow-api/internal/jsonvalue"
)

type AnnotationType string

const (
	AnnotationTypeComparison    AnnotationType = "comparison"
	AnnotationTypeRubric        AnnotationType = "rubric"
	AnnotationTypeDemonstration AnnotationType = "demonstration"
)

// AnnotationTypes lists the supported annotation types in display order.
var AnnotationTypes = []AnnotationType{
	AnnotationTypeComparison,
	AnnotationTypeRubric,
	AnnotationTypeDemonstration,
}

// Valid reports whether t is one of the supported annotation types.
func (t AnnotationType) Valid() bool {
	for _, known := range AnnotationTypes {
		if t == known {
			return true
		}
	}
	return false
}

type AnnotationTask struct {
	ID             uint64           `gorm:"primarykey" json:"id"`
	PromptID       uint64           `gorm:"not null;index" json:"prompt_id"`
	AnnotationType AnnotationType   `gorm:"type:varchar(20);not null" json:"annotation_type"`
	RubricConfig   jsonvalue.Object `json:"rubric_config"`
	CreatedByID    *uint64          `gorm:"index" json:"created_by_id"`
	Status         string           `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	CreatedAt      time.Time        `json:"created_at"`

	// Relations
	Prompt      *Prompt          `gorm:"foreignKey:PromptID" json:"prompt,omitempty"`
	Creator     *User            `gorm:"foreignKey:CreatedByID" json:"-"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}
