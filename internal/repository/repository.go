package repository

import (
	"time"

	"github.com/yukikurage/annotation-workflow-api/internal/models"
	"github.com/yukikurage/annotation-workflow-api/internal/utils"
)

// Repositories are built from the handle of the transaction they run in,
// e.g. NewTaskRepository(tx). They return raw gorm errors; the services
// translate them.

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmails returns the users whose email is in emails, in no particular order
	FindByEmails(emails []string) ([]models.User, error)

	// CountByIDs counts how many of the given user IDs exist
	CountByIDs(ids []uint64) (int64, error)
}

// PromptRepository defines the interface for prompt and model output data access
type PromptRepository interface {
	// Create creates a prompt row without its outputs
	Create(prompt *models.Prompt) error

	// CreateOutputs creates model outputs that already carry their prompt ID
	CreateOutputs(outputs []models.ModelOutput) error

	// FindByID finds a prompt by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Prompt, error)

	// Exists reports whether a prompt with the ID exists
	Exists(id uint64) (bool, error)
}

// TaskRepository defines the interface for annotation task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.AnnotationTask) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.AnnotationTask, error)

	// Exists reports whether a task with the ID exists
	Exists(id uint64) (bool, error)
}

// AssignmentRepository defines the interface for task assignment data access
type AssignmentRepository interface {
	// Create creates a single assignment
	Create(assignment *models.TaskAssignment) error

	// CreateBatch creates several assignments in one statement
	CreateBatch(assignments []models.TaskAssignment) error

	// FindByID finds an assignment by ID
	FindByID(id uint64) (*models.TaskAssignment, error)

	// FindByTaskAndUser finds the assignment for a (task, user) pair
	FindByTaskAndUser(taskID, userID uint64) (*models.TaskAssignment, error)

	// Reopen overwrites the due date and puts the assignment back to pending
	Reopen(assignment *models.TaskAssignment, dueAt *time.Time) error

	// MarkCompleted sets the assignment status to completed
	MarkCompleted(id uint64) error

	// ListDetailedByUserID lists a user's assignments with task, prompt and outputs loaded
	ListDetailedByUserID(userID uint64) ([]models.TaskAssignment, error)
}

// AnnotationRepository defines the interface for annotation and safety incident data access
type AnnotationRepository interface {
	// Create creates an annotation
	Create(annotation *models.Annotation) error

	// CreateIncident creates a safety incident
	CreateIncident(incident *models.SafetyIncident) error

	// ListByAssignmentID lists the annotations of an assignment, oldest first
	ListByAssignmentID(assignmentID uint64) ([]models.Annotation, error)
}

// AuditRepository defines the interface for the append-only audit trail
type AuditRepository interface {
	// Append inserts a new audit entry
	Append(entry *models.AuditLog) error

	// List retrieves audit entries, newest first
	List(filter AuditFilter) ([]models.AuditLog, int64, error)
}

// AuditFilter holds filtering options for listing audit entries
type AuditFilter struct {
	Action     string
	ActorID    *uint64
	Pagination utils.PaginationParams
}

// StatsRepository defines the counting queries behind the metrics
type StatsRepository interface {
	// CountAnnotations counts all annotations
	CountAnnotations() (int64, error)

	// CountAssignments counts assignments, restricted to status when it is not empty
	CountAssignments(status models.AssignmentStatus) (int64, error)

	// CountSafetyIncidents counts all safety incidents
	CountSafetyIncidents() (int64, error)
}
