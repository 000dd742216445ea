package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/annotation-workflow-api/internal/dto"
	apierrors "github.com/yukikurage/annotation-workflow-api/internal/errors"
	"github.com/yukikurage/annotation-workflow-api/internal/services"
	"github.com/yukikurage/annotation-workflow-api/internal/utils"
	"gorm.io/gorm"
)

// AnalyticsHandler serves the metrics and the audit trail
type AnalyticsHandler struct {
	db      *gorm.DB
	metrics *services.MetricsService
	audit   *services.AuditService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(db *gorm.DB, metrics *services.MetricsService, audit *services.AuditService) *AnalyticsHandler {
	return &AnalyticsHandler{
		db:      db,
		metrics: metrics,
		audit:   audit,
	}
}

// Metrics returns the derived statistics
func (h *AnalyticsHandler) Metrics(c *gin.Context) {
	metrics, err := h.metrics.ComputeMetrics(c.Request.Context(), h.db)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// AuditLogs lists audit entries, newest first
// Can filter by action and actor_id
func (h *AnalyticsHandler) AuditLogs(c *gin.Context) {
	query := services.AuditQuery{
		Action:     c.Query("action"),
		Pagination: utils.GetPaginationParams(c),
	}

	if raw := c.Query("actor_id"); raw != "" {
		actorID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid actor_id")
			return
		}
		query.ActorID = &actorID
	}

	entries, total, err := h.audit.ListAuditLogs(c.Request.Context(), h.db, query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuditLogListResponse(entries, query.Pagination, total))
}
