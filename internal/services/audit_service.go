package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/annotation-workflow-api/internal/models"
	"github.com/yukikurage/annotation-workflow-api/internal/repository"
	"github.com/yukikurage/annotation-workflow-api/internal/utils"
	"gorm.io/gorm"
)

// AuditService reads the append-only audit trail.
type AuditService struct{}

// NewAuditService creates a new AuditService
func NewAuditService() *AuditService {
	return &AuditService{}
}

// AuditQuery represents filters for listing audit entries
type AuditQuery struct {
	Action     string
	ActorID    *uint64
	Pagination utils.PaginationParams
}

// ListAuditLogs returns one page of audit entries, newest first, and the total
// number of entries matching the filters.
func (s *AuditService) ListAuditLogs(ctx context.Context, db *gorm.DB, query AuditQuery) ([]models.AuditLog, int64, error) {
	if query.Pagination.Limit == 0 {
		query.Pagination = utils.NewPaginationParams("", "")
	}

	entries, total, err := repository.NewAuditRepository(db.WithContext(ctx)).List(repository.AuditFilter{
		Action:     query.Action,
		ActorID:    query.ActorID,
		Pagination: query.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}

	return entries, total, nil
}
