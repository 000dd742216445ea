package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrValidation marks structurally invalid input reaching the services.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation, e.g. a racing assign on the same (task, user).
	ErrConflict = errors.New("conflict")
	// ErrReference marks a foreign-key target missing at write time.
	ErrReference = errors.New("referenced entity does not exist")

	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoOutputGenerated    = errors.New("AI did not generate an output")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFound(entity string, id uint64) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
}

// translateStoreError maps store failures onto the service error taxonomy.
// Errors that already carry a taxonomy sentinel pass through untouched.
func translateStoreError(err error, action string) error {
	if err == nil {
		return nil
	}
	if isTaxonomyError(err) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, action)
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return fmt.Errorf("%w: %s: %v", ErrConflict, action, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated), isForeignKeyViolation(err):
		return fmt.Errorf("%w: %s: %v", ErrReference, action, err)
	default:
		return fmt.Errorf("failed to %s: %w", action, err)
	}
}

func isTaxonomyError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrReference) ||
		errors.Is(err, ErrAIServiceNotConfigured)
}

// Fallbacks for dialects whose error translator does not know the driver error.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "Duplicate entry")
}

func isForeignKeyViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "violates foreign key constraint") ||
		strings.Contains(msg, "a foreign key constraint fails")
}

// uniqueUint64 removes duplicate IDs while maintaining the original order.
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
