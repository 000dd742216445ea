package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/annotation-workflow-api/internal/constants"
	"github.com/yukikurage/annotation-workflow-api/internal/dto"
	apierrors "github.com/yukikurage/annotation-workflow-api/internal/errors"
	"github.com/yukikurage/annotation-workflow-api/internal/services"
	"gorm.io/gorm"
)

// RequireAssignmentAccess checks that the assignment in :id is one of the
// acting user's own assignments. The acting user comes from the user_id query
// parameter, or from the session when the parameter is absent.
func RequireAssignmentAccess(db *gorm.DB, assignmentService *services.AssignmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get assignment ID from URL parameter
		assignmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid assignment ID")
			return
		}

		userID, ok := actingUserID(c)
		if !ok {
			apierrors.BadRequest(c, "Invalid or missing user_id")
			return
		}

		details, err := assignmentService.ListAssignmentsForUser(c.Request.Context(), db, userID)
		if err != nil {
			_ = c.Error(err)
			apierrors.InternalError(c, "Failed to load assignments")
			return
		}

		// Return 404 rather than 403 so foreign assignments look absent
		if !services.AssignmentBelongsToUser(details, assignmentID) {
			apierrors.NotFound(c, "Assignment not found for user")
			return
		}

		for _, detail := range details {
			if detail.ID == assignmentID {
				c.Set(constants.ContextKeyDetail, detail)
				break
			}
		}
		c.Next()
	}
}

// GetAssignmentDetail returns the detail stored by RequireAssignmentAccess
func GetAssignmentDetail(c *gin.Context) (dto.AssignmentDetail, bool) {
	value, exists := c.Get(constants.ContextKeyDetail)
	if !exists {
		return dto.AssignmentDetail{}, false
	}
	detail, ok := value.(dto.AssignmentDetail)
	return detail, ok
}

func actingUserID(c *gin.Context) (uint64, bool) {
	if raw, present := c.GetQuery("user_id"); present {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return 0, false
		}
		return id, true
	}
	return GetUserID(c)
}
