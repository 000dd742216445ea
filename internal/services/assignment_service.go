package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/annotation-workflow-api/internal/dto"
	"github.com/yukikurage/annotation-workflow-api/internal/models"
	"github.com/yukikurage/annotation-workflow-api/internal/repository"
	"gorm.io/gorm"
)

// AssignmentService owns the assignment state machine:
//
//	(none) --assign--> pending --submit--> completed --assign--> pending
type AssignmentService struct{}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService() *AssignmentService {
	return &AssignmentService{}
}

// Assign creates a pending assignment for (taskID, userID), or, when one
// exists, overwrites its due date and puts it back to pending whatever its
// current status. A racing insert on the same pair surfaces as ErrConflict.
func (s *AssignmentService) Assign(ctx context.Context, db *gorm.DB, taskID, userID uint64, dueAt *time.Time) (*models.TaskAssignment, error) {
	if taskID == 0 {
		return nil, validationError("task_id is required")
	}
	if userID == 0 {
		return nil, validationError("user_id is required")
	}

	var assignment *models.TaskAssignment

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if exists, err := repository.NewTaskRepository(tx).Exists(taskID); err != nil {
			return fmt.Errorf("failed to check task: %w", err)
		} else if !exists {
			return notFound("task", taskID)
		}

		if _, err := repository.NewUserRepository(tx).FindByID(userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("user", userID)
			}
			return fmt.Errorf("failed to find user: %w", err)
		}

		assignmentRepo := repository.NewAssignmentRepository(tx)

		existing, err := assignmentRepo.FindByTaskAndUser(taskID, userID)
		switch {
		case err == nil:
			if err := assignmentRepo.Reopen(existing, dueAt); err != nil {
				return translateStoreError(err, "update assignment")
			}
			assignment = existing
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to find assignment: %w", err)
		}

		created := &models.TaskAssignment{
			TaskID: taskID,
			UserID: userID,
			Status: models.AssignmentStatusPending,
			DueAt:  dueAt,
		}
		if err := assignmentRepo.Create(created); err != nil {
			return translateStoreError(err, "create assignment")
		}
		assignment = created

		return nil
	})
	if err != nil {
		return nil, err
	}

	return assignment, nil
}

// ListAssignmentsForUser returns the user's assignments ordered by ID, each
// flattened with its task, prompt and model outputs. An unknown user has no
// assignments.
func (s *AssignmentService) ListAssignmentsForUser(ctx context.Context, db *gorm.DB, userID uint64) ([]dto.AssignmentDetail, error) {
	assignments, err := repository.NewAssignmentRepository(db.WithContext(ctx)).ListDetailedByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	details := make([]dto.AssignmentDetail, len(assignments))
	for i, assignment := range assignments {
		details[i] = dto.ToAssignmentDetail(assignment)
	}

	return details, nil
}

// AssignmentBelongsToUser reports whether assignmentID is among details.
func AssignmentBelongsToUser(details []dto.AssignmentDetail, assignmentID uint64) bool {
	for _, d := range details {
		if d.ID == assignmentID {
			return true
		}
	}
	return false
}
