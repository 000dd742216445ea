package dto

import (
	"time"

	"github.com/yukikurage/annotation-workflow-api/internal/jsonvalue"
	"github.com/yukikurage/annotation-workflow-api/internal/models"
)

// TaskDTO represents an annotation task in API responses
type TaskDTO struct {
	ID             uint64                `json:"id"`
	PromptID       uint64                `json:"prompt_id"`
	AnnotationType models.AnnotationType `json:"annotation_type"`
	RubricConfig   jsonvalue.Object      `json:"rubric_config"`
	CreatedByID    *uint64               `json:"created_by_id,omitempty"`
	Status         string                `json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
}

// TaskAssignmentDTO represents a task assignment in API responses
type TaskAssignmentDTO struct {
	ID        uint64                  `json:"id"`
	TaskID    uint64                  `json:"task_id"`
	UserID    uint64                  `json:"user_id"`
	Status    models.AssignmentStatus `json:"status"`
	DueAt     *time.Time              `json:"due_at"`
	CreatedAt time.Time               `json:"created_at"`
}

// TaskWithAssignmentsDTO is a task together with its assignments
type TaskWithAssignmentsDTO struct {
	TaskDTO
	Assignments []TaskAssignmentDTO `json:"assignments"`
}

// AssignmentDetail is the flattened view of one assignment handed to a
// reviewer: the assignment, its task, the task's prompt and the prompt's
// candidate outputs.
type AssignmentDetail struct {
	TaskAssignmentDTO
	Task         TaskDTO          `json:"task"`
	Prompt       PromptDTO        `json:"prompt"`
	ModelOutputs []ModelOutputDTO `json:"model_outputs"`
}

// Conversion functions

// ToTaskDTO converts an AnnotationTask model to TaskDTO
func ToTaskDTO(task models.AnnotationTask) TaskDTO {
	return TaskDTO{
		ID:             task.ID,
		PromptID:       task.PromptID,
		AnnotationType: task.AnnotationType,
		RubricConfig:   task.RubricConfig,
		CreatedByID:    task.CreatedByID,
		Status:         task.Status,
		CreatedAt:      task.CreatedAt,
	}
}

// ToTaskAssignmentDTO converts a TaskAssignment model to TaskAssignmentDTO
func ToTaskAssignmentDTO(assignment models.TaskAssignment) TaskAssignmentDTO {
	return TaskAssignmentDTO{
		ID:        assignment.ID,
		TaskID:    assignment.TaskID,
		UserID:    assignment.UserID,
		Status:    assignment.Status,
		DueAt:     assignment.DueAt,
		CreatedAt: assignment.CreatedAt,
	}
}

// ToTaskWithAssignmentsDTO converts a task and its loaded assignments
func ToTaskWithAssignmentsDTO(task models.AnnotationTask) TaskWithAssignmentsDTO {
	assignments := make([]TaskAssignmentDTO, len(task.Assignments))
	for i, assignment := range task.Assignments {
		assignments[i] = ToTaskAssignmentDTO(assignment)
	}

	return TaskWithAssignmentsDTO{
		TaskDTO:     ToTaskDTO(task),
		Assignments: assignments,
	}
}

// ToAssignmentDetail flattens an assignment whose Task, Task.Prompt and
// Task.Prompt.Outputs relations are loaded
func ToAssignmentDetail(assignment models.TaskAssignment) AssignmentDetail {
	detail := AssignmentDetail{
		TaskAssignmentDTO: ToTaskAssignmentDTO(assignment),
		ModelOutputs:      []ModelOutputDTO{},
	}

	if assignment.Task != nil {
		detail.Task = ToTaskDTO(*assignment.Task)
		if assignment.Task.Prompt != nil {
			detail.Prompt = ToPromptDTO(*assignment.Task.Prompt)
			detail.ModelOutputs = ToModelOutputDTOs(assignment.Task.Prompt.Outputs)
		}
	}

	return detail
}
