package models

import "time"

type AssignmentStatus string

const (
	AssignmentStatusPending   AssignmentStatus = "pending"
	AssignmentStatusCompleted AssignmentStatus = "completed"
)

// TaskAssignment binds one task to one reviewer. The (task_id, user_id)
// pair is unique; reassignment updates the existing row.
type TaskAssignment struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	TaskID    uint64           `gorm:"not null;uniqueIndex:uq_task_user,priority:1" json:"task_id"`
	UserID    uint64           `gorm:"not null;uniqueIndex:uq_task_user,priority:2;index" json:"user_id"`
	Status    AssignmentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	DueAt     *time.Time       `json:"due_at"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	// Relations
	Task *AnnotationTask `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
