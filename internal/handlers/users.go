package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/annotation-workflow-api/internal/dto"
	"github.com/yukikurage/annotation-workflow-api/internal/models"
	"github.com/yukikurage/annotation-workflow-api/internal/services"
	"gorm.io/gorm"
)

type userRequest struct {
	Email           string          `json:"email" binding:"required,email"`
	Name            string          `json:"name" binding:"required"`
	Role            models.UserRole `json:"role" binding:"omitempty,oneof=admin reviewer annotator"`
	Specialty       *string         `json:"specialty"`
	ExperienceYears *int            `json:"experience_years" binding:"omitempty,min=0"`
	Password        string          `json:"password"`
}

func (r userRequest) toSpec() services.UserSpec {
	return services.UserSpec{
		Email:           r.Email,
		Name:            r.Name,
		Role:            r.Role,
		Specialty:       r.Specialty,
		ExperienceYears: r.ExperienceYears,
		Password:        r.Password,
	}
}

// UserHandler serves the identity registry
type UserHandler struct {
	db          *gorm.DB
	identity    *services.IdentityService
	assignments *services.AssignmentService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(db *gorm.DB, identity *services.IdentityService, assignments *services.AssignmentService) *UserHandler {
	return &UserHandler{
		db:          db,
		identity:    identity,
		assignments: assignments,
	}
}

// CreateUser registers a single user
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req userRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.identity.CreateUser(c.Request.Context(), h.db, req.toSpec())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// EnsureUsers returns existing users by email and creates the missing ones
func (h *UserHandler) EnsureUsers(c *gin.Context) {
	type EnsureUsersRequest struct {
		Users []userRequest `json:"users" binding:"required,min=1,dive"`
	}

	var req EnsureUsersRequest
	if !bindJSON(c, &req) {
		return
	}

	specs := make([]services.UserSpec, len(req.Users))
	for i, u := range req.Users {
		specs[i] = u.toSpec()
	}

	users, err := h.identity.EnsureUsers(c.Request.Context(), h.db, specs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// ListAssignments returns the user's assignments with task, prompt and outputs
func (h *UserHandler) ListAssignments(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	details, err := h.assignments.ListAssignmentsForUser(c.Request.Context(), h.db, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}
