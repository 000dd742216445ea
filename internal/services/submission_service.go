package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/annotation-workflow-api/internal/constants"
	"github.com/yukikurage/annotation-workflow-api/internal/jsonvalue"
	"github.com/yukikurage/annotation-workflow-api/internal/models"
	"github.com/yukikurage/annotation-workflow-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SubmissionService records reviewer submissions.
type SubmissionService struct {
	logger *zap.Logger
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(logger *zap.Logger) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{logger: logger}
}

// SubmitInput represents one submission for an assignment. SafetyIncident is
// nil when the reviewer did not flag anything; any non-nil object, including
// an empty one, creates an incident.
type SubmitInput struct {
	AssignmentID   uint64
	UserID         uint64
	Payload        jsonvalue.Object
	Comment        *string
	SafetyIncident jsonvalue.Object
}

// Submit writes the annotation, completes the assignment, records the
// optional safety incident and appends the audit entry in one transaction.
// The caller is trusted to have checked that the assignment belongs to
// input.UserID. Submitting again for a completed assignment adds another
// annotation.
func (s *SubmissionService) Submit(ctx context.Context, db *gorm.DB, input SubmitInput) (*models.Annotation, error) {
	if input.AssignmentID == 0 {
		return nil, validationError("assignment_id is required")
	}
	if input.UserID == 0 {
		return nil, validationError("user_id is required")
	}
	if input.Payload == nil {
		return nil, validationError("payload is required")
	}

	var (
		annotation *models.Annotation
		incident   *models.SafetyIncident
	)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignmentRepo := repository.NewAssignmentRepository(tx)
		annotationRepo := repository.NewAnnotationRepository(tx)

		assignment, err := assignmentRepo.FindByID(input.AssignmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("assignment", input.AssignmentID)
			}
			return fmt.Errorf("failed to find assignment: %w", err)
		}

		annotation = &models.Annotation{
			TaskID:       assignment.TaskID,
			AssignmentID: assignment.ID,
			UserID:       input.UserID,
			Payload:      input.Payload,
			Comment:      input.Comment,
		}
		if err := annotationRepo.Create(annotation); err != nil {
			return translateStoreError(err, "create annotation")
		}

		if err := assignmentRepo.MarkCompleted(assignment.ID); err != nil {
			return translateStoreError(err, "complete assignment")
		}

		if input.SafetyIncident != nil {
			incident = newSafetyIncident(annotation.ID, input.SafetyIncident)
			if err := annotationRepo.CreateIncident(incident); err != nil {
				return translateStoreError(err, "create safety incident")
			}
		}

		payload := jsonvalue.Object{}
		payload.Set("assignment_id", jsonvalue.Int(int64(assignment.ID)))
		payload.Set("task_id", jsonvalue.Int(int64(assignment.TaskID)))

		actorID := input.UserID
		entry := &models.AuditLog{
			ActorID: &actorID,
			Action:  constants.ActionSubmitAnnotation,
			Payload: payload,
		}
		if err := repository.NewAuditRepository(tx).Append(entry); err != nil {
			return translateStoreError(err, "append audit log")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("annotation submitted",
		zap.Uint64("annotation_id", annotation.ID),
		zap.Uint64("assignment_id", annotation.AssignmentID),
		zap.Uint64("task_id", annotation.TaskID),
		zap.Uint64("user_id", annotation.UserID),
	)
	if incident != nil {
		s.logger.Warn("safety incident flagged",
			zap.Uint64("incident_id", incident.ID),
			zap.Uint64("annotation_id", annotation.ID),
			zap.String("severity", incident.Severity),
		)
	}

	return annotation, nil
}

// newSafetyIncident reads the severity and tags keys of the flagged data.
// A string severity is used as is, other values use their JSON text, and a
// missing or null severity falls back to "info". Tags are kept verbatim.
func newSafetyIncident(annotationID uint64, data jsonvalue.Object) *models.SafetyIncident {
	severity := constants.DefaultSeverity
	if v, ok := data.Get("severity"); ok && !v.IsNull() {
		severity = v.Text()
	}

	tags := jsonvalue.Null()
	if v, ok := data.Get("tags"); ok {
		tags = v
	}

	return &models.SafetyIncident{
		AnnotationID: annotationID,
		Severity:     severity,
		Tags:         tags,
	}
}

// ListAnnotations returns the annotations submitted for an assignment, oldest
// first. An assignment without submissions yields an empty list.
func (s *SubmissionService) ListAnnotations(ctx context.Context, db *gorm.DB, assignmentID uint64) ([]models.Annotation, error) {
	annotations, err := repository.NewAnnotationRepository(db.WithContext(ctx)).ListByAssignmentID(assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list annotations: %w", err)
	}
	return annotations, nil
}
