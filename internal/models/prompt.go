package models

import (
	"time"

	"github.com/yukikurage/annotation-workflow-api/internal/jsonvalue"
)

type Prompt struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	Title     string           `gorm:"type:varchar(255);not null" json:"title"`
	Body      string           `gorm:"type:text;not null" json:"body"`
	Category  *string          `gorm:"type:varchar(100)" json:"category"`
	Metadata  jsonvalue.Object `json:"metadata"`
	CreatedAt time.Time        `json:"created_at"`

	// Relations
	Outputs []ModelOutput `gorm:"foreignKey:PromptID" json:"model_outputs,omitempty"`
}

type ModelOutput struct {
	ID           uint64           `gorm:"primarykey" json:"id"`
	PromptID     uint64           `gorm:"not null;index" json:"prompt_id"`
	ModelVersion string           `gorm:"type:varchar(100);not null" json:"model_version"`
	Response     string           `gorm:"type:text;not null" json:"response"`
	Parameters   jsonvalue.Object `json:"parameters"`
	CreatedAt    time.Time        `json:"created_at"`
}
