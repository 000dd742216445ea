package repository

import (
	"time"

	"github.com/yukikurage/annotation-workflow-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task. Assignments are written by AssignmentRepository.
func (r *GormTaskRepository) Create(task *models.AnnotationTask) error {
	return r.db.Omit(clause.Associations).Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.AnnotationTask, error) {
	var task models.AnnotationTask
	query := r.db

	// Apply preloading if specified
	for _, p := range preload {
		switch p {
		case "Assignments":
			query = query.Preload(p, orderByID("task_assignments"))
		case "Prompt.Outputs":
			query = query.Preload(p, orderByID("model_outputs"))
		default:
			query = query.Preload(p)
		}
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// Exists reports whether a task with the ID exists
func (r *GormTaskRepository) Exists(id uint64) (bool, error) {
	var count int64
	if err := r.db.Model(&models.AnnotationTask{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GormAssignmentRepository is a GORM implementation of AssignmentRepository
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Create creates a single assignment
func (r *GormAssignmentRepository) Create(assignment *models.TaskAssignment) error {
	return r.db.Omit(clause.Associations).Create(assignment).Error
}

// CreateBatch creates several assignments in one statement
func (r *GormAssignmentRepository) CreateBatch(assignments []models.TaskAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return r.db.Omit(clause.Associations).Create(&assignments).Error
}

// FindByID finds an assignment by ID
func (r *GormAssignmentRepository) FindByID(id uint64) (*models.TaskAssignment, error) {
	var assignment models.TaskAssignment
	if err := r.db.First(&assignment, id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// FindByTaskAndUser finds the assignment for a (task, user) pair
func (r *GormAssignmentRepository) FindByTaskAndUser(taskID, userID uint64) (*models.TaskAssignment, error) {
	var assignment models.TaskAssignment
	err := r.db.Where("task_id = ? AND user_id = ?", taskID, userID).First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Reopen overwrites the due date (nil clears it) and sets the status back to pending
func (r *GormAssignmentRepository) Reopen(assignment *models.TaskAssignment, dueAt *time.Time) error {
	assignment.DueAt = dueAt
	assignment.Status = models.AssignmentStatusPending

	return r.db.Model(assignment).Updates(map[string]interface{}{
		"due_at": dueAt,
		"status": models.AssignmentStatusPending,
	}).Error
}

// MarkCompleted sets the assignment status to completed
func (r *GormAssignmentRepository) MarkCompleted(id uint64) error {
	return r.db.Model(&models.TaskAssignment{}).
		Where("id = ?", id).
		Update("status", models.AssignmentStatusCompleted).Error
}

// ListDetailedByUserID lists a user's assignments ordered by ID, each with its
// task, the task's prompt and the prompt's model outputs loaded in one pass
func (r *GormAssignmentRepository) ListDetailedByUserID(userID uint64) ([]models.TaskAssignment, error) {
	var assignments []models.TaskAssignment

	err := r.db.
		Preload("Task").
		Preload("Task.Prompt").
		Preload("Task.Prompt.Outputs", orderByID("model_outputs")).
		Where("user_id = ?", userID).
		Order("task_assignments.id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	return assignments, nil
}
