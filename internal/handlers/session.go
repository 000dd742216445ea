package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/annotation-workflow-api/internal/constants"
	"github.com/yukikurage/annotation-workflow-api/internal/dto"
	apierrors "github.com/yukikurage/annotation-workflow-api/internal/errors"
	"github.com/yukikurage/annotation-workflow-api/internal/middleware"
	"github.com/yukikurage/annotation-workflow-api/internal/services"
	"gorm.io/gorm"
)

// SessionHandler remembers which user is acting. It selects a user, it does
// not authenticate one.
type SessionHandler struct {
	db       *gorm.DB
	identity *services.IdentityService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(db *gorm.DB, identity *services.IdentityService) *SessionHandler {
	return &SessionHandler{
		db:       db,
		identity: identity,
	}
}

// Login ensures the user exists and stores its ID in the session
func (h *SessionHandler) Login(c *gin.Context) {
	var req userRequest
	if !bindJSON(c, &req) {
		return
	}

	users, err := h.identity.EnsureUsers(c.Request.Context(), h.db, []services.UserSpec{req.toSpec()})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	user := users[0]

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		_ = c.Error(err)
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(user))
}

// Logout clears the session
func (h *SessionHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		_ = c.Error(err)
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// Me returns the session user
func (h *SessionHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "No user selected")
		return
	}

	user, err := h.identity.GetUser(c.Request.Context(), h.db, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
