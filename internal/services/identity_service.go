package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/annotation-workflow-api/internal/constants"
	"github.com/yukikurage/annotation-workflow-api/internal/models"
	"github.com/yukikurage/annotation-workflow-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrFailedToHashPassword = errors.New("failed to hash password")

// IdentityService registers reviewers and annotators.
type IdentityService struct{}

// NewIdentityService creates a new IdentityService.
func NewIdentityService() *IdentityService {
	return &IdentityService{}
}

// UserSpec describes a user to create or look up by email.
type UserSpec struct {
	Email           string
	Name            string
	Role            models.UserRole
	Specialty       *string
	ExperienceYears *int
	Password        string
}

// EnsureUsers returns one user per spec, in spec order, creating the ones whose
// email is not registered yet. Calling it again with the same emails returns
// the same users.
func (s *IdentityService) EnsureUsers(ctx context.Context, db *gorm.DB, specs []UserSpec) ([]models.User, error) {
	normalized := make([]UserSpec, len(specs))
	emails := make([]string, 0, len(specs))
	for i, spec := range specs {
		n, err := normalizeUserSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("users[%d]: %w", i, err)
		}
		normalized[i] = n
		emails = append(emails, n.Email)
	}

	result := make([]models.User, 0, len(normalized))

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userRepo := repository.NewUserRepository(tx)

		existing, err := userRepo.FindByEmails(emails)
		if err != nil {
			return fmt.Errorf("failed to look up users: %w", err)
		}

		byEmail := make(map[string]models.User, len(existing))
		for _, u := range existing {
			byEmail[u.Email] = u
		}

		for _, spec := range normalized {
			if u, ok := byEmail[spec.Email]; ok {
				result = append(result, u)
				continue
			}

			user, err := newUser(spec)
			if err != nil {
				return err
			}
			if err := userRepo.Create(user); err != nil {
				return translateStoreError(err, "create user")
			}
			byEmail[user.Email] = *user
			result = append(result, *user)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CreateUser creates a single user; an already registered email is a conflict.
func (s *IdentityService) CreateUser(ctx context.Context, db *gorm.DB, spec UserSpec) (*models.User, error) {
	spec, err := normalizeUserSpec(spec)
	if err != nil {
		return nil, err
	}

	user, err := newUser(spec)
	if err != nil {
		return nil, err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewUserRepository(tx).Create(user); err != nil {
			return translateStoreError(err, "create user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *IdentityService) GetUser(ctx context.Context, db *gorm.DB, id uint64) (*models.User, error) {
	user, err := repository.NewUserRepository(db.WithContext(ctx)).FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user", id)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func normalizeUserSpec(spec UserSpec) (UserSpec, error) {
	spec.Email = strings.TrimSpace(spec.Email)
	spec.Name = strings.TrimSpace(spec.Name)

	if spec.Email == "" {
		return spec, validationError("email is required")
	}
	if spec.Name == "" {
		return spec, validationError("name is required")
	}
	if spec.Role == "" {
		spec.Role = models.RoleAnnotator
	}
	if !spec.Role.Valid() {
		return spec, validationError("unknown role %q", spec.Role)
	}
	if spec.ExperienceYears != nil && *spec.ExperienceYears < 0 {
		return spec, validationError("experience_years cannot be negative")
	}
	if spec.Password != "" && len(spec.Password) < constants.MinPasswordLength {
		return spec, validationError("password must be at least %d characters", constants.MinPasswordLength)
	}

	return spec, nil
}

func newUser(spec UserSpec) (*models.User, error) {
	user := &models.User{
		Email:           spec.Email,
		Name:            spec.Name,
		Role:            spec.Role,
		Specialty:       spec.Specialty,
		ExperienceYears: spec.ExperienceYears,
	}

	if spec.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(spec.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashedPassword)
	}

	return user, nil
}
