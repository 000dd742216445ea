package dto

import (
	"time"

	"github.com/yukikurage/annotation-workflow-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID              uint64          `json:"id"`
	Email           string          `json:"email"`
	Name            string          `json:"name"`
	Role            models.UserRole `json:"role"`
	Specialty       *string         `json:"specialty"`
	ExperienceYears *int            `json:"experience_years"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		Role:            user.Role,
		Specialty:       user.Specialty,
		ExperienceYears: user.ExperienceYears,
		CreatedAt:       user.CreatedAt,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}
	return items
}
