package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/annotation-workflow-api/internal/dto"
	apierrors "github.com/yukikurage/annotation-workflow-api/internal/errors"
	"github.com/yukikurage/annotation-workflow-api/internal/jsonvalue"
	"github.com/yukikurage/annotation-workflow-api/internal/middleware"
	"github.com/yukikurage/annotation-workflow-api/internal/models"
	"github.com/yukikurage/annotation-workflow-api/internal/services"
	"gorm.io/gorm"
)

// TaskHandler serves the task registry and the assign operation
type TaskHandler struct {
	db          *gorm.DB
	tasks       *services.TaskService
	assignments *services.AssignmentService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(db *gorm.DB, tasks *services.TaskService, assignments *services.AssignmentService) *TaskHandler {
	return &TaskHandler{
		db:          db,
		tasks:       tasks,
		assignments: assignments,
	}
}

// CreateTask creates a task and its initial assignments
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		PromptID       uint64                `json:"prompt_id" binding:"required"`
		AnnotationType models.AnnotationType `json:"annotation_type" binding:"required"`
		RubricConfig   jsonvalue.Object      `json:"rubric_config"`
		AssigneeIDs    []uint64              `json:"assignee_ids"`
		DueAt          *time.Time            `json:"due_at"`
	}

	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	input := services.CreateTaskInput{
		PromptID:       req.PromptID,
		AnnotationType: req.AnnotationType,
		RubricConfig:   req.RubricConfig,
		AssigneeIDs:    req.AssigneeIDs,
		DueAt:          req.DueAt,
	}
	if userID, ok := middleware.GetUserID(c); ok {
		input.CreatedByID = &userID
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), h.db, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskWithAssignmentsDTO(*task))
}

// GetTask returns a task with its assignments
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(c.Request.Context(), h.db, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskWithAssignmentsDTO(*task))
}

// AssignTask assigns the task to a user, reopening an existing assignment
func (h *TaskHandler) AssignTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	type AssignRequest struct {
		DueAt *time.Time `json:"due_at"`
	}

	// the body is optional
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		if tooLarge(err) {
			apierrors.PayloadTooLarge(c, "")
			return
		}
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignment, err := h.assignments.Assign(c.Request.Context(), h.db, taskID, userID, req.DueAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskAssignmentDTO(*assignment))
}

// AnnotationTypes lists the supported annotation types
func (h *TaskHandler) AnnotationTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.tasks.AnnotationTypes())
}
