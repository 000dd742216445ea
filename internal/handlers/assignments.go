package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/annotation-workflow-api/internal/dto"
	apierrors "github.com/yukikurage/annotation-workflow-api/internal/errors"
	"github.com/yukikurage/annotation-workflow-api/internal/jsonvalue"
	"github.com/yukikurage/annotation-workflow-api/internal/middleware"
	"github.com/yukikurage/annotation-workflow-api/internal/services"
	"gorm.io/gorm"
)

// AssignmentHandler serves submissions
type AssignmentHandler struct {
	db          *gorm.DB
	submissions *services.SubmissionService
}

// NewAssignmentHandler creates a new AssignmentHandler
func NewAssignmentHandler(db *gorm.DB, submissions *services.SubmissionService) *AssignmentHandler {
	return &AssignmentHandler{
		db:          db,
		submissions: submissions,
	}
}

// Submit records an annotation for the assignment checked by
// RequireAssignmentAccess
func (h *AssignmentHandler) Submit(c *gin.Context) {
	detail, exists := middleware.GetAssignmentDetail(c)
	if !exists {
		apierrors.InternalError(c, "Assignment not found in context")
		return
	}

	type SubmitRequest struct {
		Payload        jsonvalue.Object `json:"payload"`
		Comment        *string          `json:"comment"`
		SafetyIncident jsonvalue.Object `json:"safety_incident"`
	}

	var req SubmitRequest
	if !bindJSON(c, &req) {
		return
	}

	annotation, err := h.submissions.Submit(c.Request.Context(), h.db, services.SubmitInput{
		AssignmentID:   detail.ID,
		UserID:         detail.UserID,
		Payload:        req.Payload,
		Comment:        req.Comment,
		SafetyIncident: req.SafetyIncident,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAnnotationDTO(*annotation))
}

// ListAnnotations returns the annotations submitted for the assignment checked
// by RequireAssignmentAccess
func (h *AssignmentHandler) ListAnnotations(c *gin.Context) {
	detail, exists := middleware.GetAssignmentDetail(c)
	if !exists {
		apierrors.InternalError(c, "Assignment not found in context")
		return
	}

	annotations, err := h.submissions.ListAnnotations(c.Request.Context(), h.db, detail.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAnnotationDTOs(annotations))
}
