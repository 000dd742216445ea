package models

import (
	"time"

	"github.com/yukikurage/annotation-workflow-api/internal/jsonvalue"
)

type Annotation struct {
	ID           uint64           `gorm:"primarykey" json:"id"`
	TaskID       uint64           `gorm:"not null;index" json:"task_id"`
	AssignmentID uint64           `gorm:"not null;index" json:"assignment_id"`
	UserID       uint64           `gorm:"not null;index" json:"user_id"`
	Payload      jsonvalue.Object `gorm:"not null" json:"payload"`
	Comment      *string          `gorm:"type:text" json:"comment"`
	CreatedAt    time.Time        `json:"created_at"`

	// Relations
	Task       *AnnotationTask `gorm:"foreignKey:TaskID" json:"-"`
	Assignment *TaskAssignment `gorm:"foreignKey:AssignmentID" json:"-"`
	User       *User           `gorm:"foreignKey:UserID" json:"-"`
}

type SafetyIncident struct {
	ID           uint64          `gorm:"primarykey" json:"id"`
	AnnotationID uint64          `gorm:"not null;index" json:"annotation_id"`
	Severity     string          `gorm:"type:varchar(50);not null" json:"severity"`
	Tags         jsonvalue.Value `json:"tags"`
	CreatedAt    time.Time       `json:"created_at"`

	// Relations
	Annotation *Annotation `gorm:"foreignKey:AnnotationID" json:"-"`
}
