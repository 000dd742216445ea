package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/annotation-workflow-api/internal/constants"
	"github.com/yukikurage/annotation-workflow-api/internal/jsonvalue"
	"github.com/yukikurage/annotation-workflow-api/internal/models"
	"github.com/yukikurage/annotation-workflow-api/internal/repository"
	"gorm.io/gorm"
)

// TaskService handles annotation task business logic
type TaskService struct{}

// NewTaskService creates a new TaskService
func NewTaskService() *TaskService {
	return &TaskService{}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	PromptID       uint64
	AnnotationType models.AnnotationType
	RubricConfig   jsonvalue.Object
	AssigneeIDs    []uint64
	DueAt          *time.Time
	CreatedByID    *uint64
}

// CreateTask creates a task bound to an existing prompt and, when assignees are
// given, one pending assignment per assignee, all in one transaction.
func (s *TaskService) CreateTask(ctx context.Context, db *gorm.DB, input CreateTaskInput) (*models.AnnotationTask, error) {
	if err := validateTaskInput(input); err != nil {
		return nil, err
	}

	assigneeIDs := uniqueUint64(input.AssigneeIDs)

	task := &models.AnnotationTask{
		PromptID:       input.PromptID,
		AnnotationType: input.AnnotationType,
		RubricConfig:   input.RubricConfig,
		CreatedByID:    input.CreatedByID,
		Status:         constants.TaskStatusOpen,
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := repository.NewPromptRepository(tx).Exists(input.PromptID)
		if err != nil {
			return fmt.Errorf("failed to check prompt: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: prompt %d", ErrReference, input.PromptID)
		}

		if len(assigneeIDs) > 0 {
			count, err := repository.NewUserRepository(tx).CountByIDs(assigneeIDs)
			if err != nil {
				return fmt.Errorf("failed to verify assignees: %w", err)
			}
			if int(count) != len(assigneeIDs) {
				return fmt.Errorf("%w: one or more assignees do not exist", ErrReference)
			}
		}

		if err := repository.NewTaskRepository(tx).Create(task); err != nil {
			return translateStoreError(err, "create task")
		}

		assignments := make([]models.TaskAssignment, len(assigneeIDs))
		for i, userID := range assigneeIDs {
			assignments[i] = models.TaskAssignment{
				TaskID: task.ID,
				UserID: userID,
				Status: models.AssignmentStatusPending,
				DueAt:  input.DueAt,
			}
		}

		if err := repository.NewAssignmentRepository(tx).CreateBatch(assignments); err != nil {
			return translateStoreError(err, "create assignments")
		}
		task.Assignments = assignments

		return nil
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

// GetTask returns a task with its assignments
func (s *TaskService) GetTask(ctx context.Context, db *gorm.DB, taskID uint64) (*models.AnnotationTask, error) {
	task, err := repository.NewTaskRepository(db.WithContext(ctx)).FindByID(taskID, "Assignments")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("task", taskID)
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// AnnotationTypes lists the supported annotation types
func (s *TaskService) AnnotationTypes() []models.AnnotationType {
	types := make([]models.AnnotationType, len(models.AnnotationTypes))
	copy(types, models.AnnotationTypes)
	return types
}

func validateTaskInput(input CreateTaskInput) error {
	if input.PromptID == 0 {
		return validationError("prompt_id is required")
	}
	if !input.AnnotationType.Valid() {
		return validationError("unknown annotation_type %q", input.AnnotationType)
	}
	for _, m := range input.RubricConfig {
		if m.Value.Kind() != jsonvalue.KindNumber {
			return validationError("rubric_config.%s must be a number", m.Key)
		}
	}
	for i, id := range input.AssigneeIDs {
		if id == 0 {
			return validationError("assignee_ids[%d] is invalid", i)
		}
	}
	return nil
}
