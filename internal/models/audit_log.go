package models

import (
	"time"

	"github.com/yukikurage/annotation-workflow-api/internal/jsonvalue"
)

// AuditLog is append-only: rows are inserted and never updated or deleted.
type AuditLog struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	ActorID   *uint64          `gorm:"index" json:"actor_id"`
	Action    string           `gorm:"type:varchar(100);not null;index" json:"action"`
	Payload   jsonvalue.Object `json:"payload"`
	CreatedAt time.Time        `gorm:"index" json:"created_at"`

	// Relations
	Actor *User `gorm:"foreignKey:ActorID" json:"-"`
}

// All lists every entity for migrations.
func All() []any {
	return []any{
		&User{},
		&Prompt{},
		&ModelOutput{},
		&AnnotationTask{},
		&TaskAssignment{},
		&Annotation{},
		&SafetyIncident{},
		&AuditLog{},
	}
}
