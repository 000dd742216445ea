package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/annotation-workflow-api/internal/middleware"
	"github.com/yukikurage/annotation-workflow-api/internal/services"
	"gorm.io/gorm"
)

// Services bundles the workflow services the handlers call into
type Services struct {
	Identity    *services.IdentityService
	Content     *services.ContentService
	Tasks       *services.TaskService
	Assignments *services.AssignmentService
	Submissions *services.SubmissionService
	Metrics     *services.MetricsService
	Audit       *services.AuditService
}

// RegisterRoutes mounts the health check and the /api routes on r. Session
// middleware must already be installed on r.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, svc Services) {
	sessionHandler := NewSessionHandler(db, svc.Identity)
	userHandler := NewUserHandler(db, svc.Identity, svc.Assignments)
	promptHandler := NewPromptHandler(db, svc.Content)
	taskHandler := NewTaskHandler(db, svc.Tasks, svc.Assignments)
	assignmentHandler := NewAssignmentHandler(db, svc.Submissions)
	analyticsHandler := NewAnalyticsHandler(db, svc.Metrics, svc.Audit)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Annotation Workflow API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	api.Use(middleware.LoadSessionUser())
	{
		session := api.Group("/session")
		{
			session.POST("/login", sessionHandler.Login)
			session.POST("/logout", sessionHandler.Logout)
			session.GET("/me", middleware.RequireAuth(), sessionHandler.Me)
		}

		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.POST("/ensure", userHandler.EnsureUsers)
			users.GET("/:id/assignments", userHandler.ListAssignments)
		}

		prompts := api.Group("/prompts")
		{
			prompts.POST("", promptHandler.CreatePrompt)
			prompts.GET("/:id", promptHandler.GetPrompt)
		}

		tasks := api.Group("/tasks")
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("/:id/assign/:user_id", taskHandler.AssignTask)
		}
		api.GET("/annotation-types", taskHandler.AnnotationTypes)

		assignments := api.Group("/assignments")
		{
			assignments.Use(middleware.RequireAssignmentAccess(db, svc.Assignments))
			assignments.POST("/:id/submit", assignmentHandler.Submit)
			assignments.GET("/:id/annotations", assignmentHandler.ListAnnotations)
		}

		analytics := api.Group("/analytics")
		{
			analytics.GET("/metrics", analyticsHandler.Metrics)
		}
		api.GET("/audit-logs", analyticsHandler.AuditLogs)
	}
}
