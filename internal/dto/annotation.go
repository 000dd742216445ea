package dto

import (
	"time"

	"github.com/yukikurage/annotation-workflow-api/internal/jsonvalue"
	"github.com/yukikurage/annotation-workflow-api/internal/models"
	"github.com/yukikurage/annotation-workflow-api/internal/utils"
)

// AnnotationDTO represents a submitted annotation in API responses
type AnnotationDTO struct {
	ID           uint64           `json:"id"`
	TaskID       uint64           `json:"task_id"`
	AssignmentID uint64           `json:"assignment_id"`
	UserID       uint64           `json:"user_id"`
	Payload      jsonvalue.Object `json:"payload"`
	Comment      *string          `json:"comment"`
	CreatedAt    time.Time        `json:"created_at"`
}

// AuditLogDTO represents an audit entry in API responses
type AuditLogDTO struct {
	ID        uint64           `json:"id"`
	ActorID   *uint64          `json:"actor_id"`
	Action    string           `json:"action"`
	Payload   jsonvalue.Object `json:"payload"`
	CreatedAt time.Time        `json:"created_at"`
}

// AuditLogListResponse represents a paginated list of audit entries
type AuditLogListResponse struct {
	AuditLogs  []AuditLogDTO            `json:"audit_logs"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToAnnotationDTO converts an Annotation model to AnnotationDTO
func ToAnnotationDTO(annotation models.Annotation) AnnotationDTO {
	return AnnotationDTO{
		ID:           annotation.ID,
		TaskID:       annotation.TaskID,
		AssignmentID: annotation.AssignmentID,
		UserID:       annotation.UserID,
		Payload:      annotation.Payload,
		Comment:      annotation.Comment,
		CreatedAt:    annotation.CreatedAt,
	}
}

// ToAnnotationDTOs converts a list of annotations
func ToAnnotationDTOs(annotations []models.Annotation) []AnnotationDTO {
	items := make([]AnnotationDTO, len(annotations))
	for i, annotation := range annotations {
		items[i] = ToAnnotationDTO(annotation)
	}
	return items
}

// ToAuditLogListResponse converts a page of audit entries
func ToAuditLogListResponse(entries []models.AuditLog, params utils.PaginationParams, total int64) AuditLogListResponse {
	items := make([]AuditLogDTO, len(entries))
	for i, entry := range entries {
		items[i] = AuditLogDTO{
			ID:        entry.ID,
			ActorID:   entry.ActorID,
			Action:    entry.Action,
			Payload:   entry.Payload,
			CreatedAt: entry.CreatedAt,
		}
	}

	return AuditLogListResponse{
		AuditLogs:  items,
		Pagination: utils.NewPaginationResponse(params, total),
	}
}
