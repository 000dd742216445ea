package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddIndexes adds composite indexes used by the assignment listing, the
// metrics counts and the audit trail reader.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Assignment listing and completion rate
		{"task_assignments", "idx_task_assignments_user_status", "user_id, status"},
		{"task_assignments", "idx_task_assignments_status", "status"},

		// Annotations per assignment
		{"annotations", "idx_annotations_assignment_created", "assignment_id, created_at"},

		// Audit trail filtering
		{"audit_logs", "idx_audit_logs_action_created", "action, created_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			log.Debug("Index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("Created index",
			zap.String("index", idx.name),
			zap.String("table", idx.table),
			zap.String("columns", idx.columns))
	}

	return nil
}
