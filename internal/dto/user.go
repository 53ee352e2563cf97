package dto

import (
	"github.com/shiftmatch/staffing-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64          `json:"id"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	FullName string          `json:"full_name"`
	Phone    string          `json:"phone"`
	Company  string          `json:"company,omitempty"`
	Location string          `json:"location,omitempty"`
}

// ApplicantDTO is the slice of a profile an organizer sees on an application
type ApplicantDTO struct {
	ID       uint64 `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location,omitempty"`
}

// OrganizerDTO is the display identity attached to open jobs
type OrganizerDTO struct {
	ID       uint64 `json:"id"`
	FullName string `json:"full_name"`
	Company  string `json:"company"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Email:    user.Email,
		Role:     user.Role,
		FullName: user.FullName,
		Phone:    user.Phone,
		Company:  user.Company,
		Location: user.Location,
	}
}

// ToApplicantDTO converts a User model to ApplicantDTO
func ToApplicantDTO(user models.User) ApplicantDTO {
	return ApplicantDTO{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Phone:    user.Phone,
		Location: user.Location,
	}
}

// ToOrganizerDTO converts a User model to OrganizerDTO. Profiles that failed
// to load fall back to a generic display identity rather than an empty card.
func ToOrganizerDTO(user models.User) OrganizerDTO {
	dto := OrganizerDTO{
		ID:       user.ID,
		FullName: user.FullName,
		Company:  user.Company,
	}
	if dto.FullName == "" {
		dto.FullName = "Unknown"
	}
	if dto.Company == "" {
		dto.Company = "Event Organizer"
	}
	return dto
}
