package services

import (
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ProfileService handles business logic for user profiles.
type ProfileService struct {
	profileRepo repositories.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo repositories.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

// GetProfile retrieves the profile for a user.
func (s *ProfileService) GetProfile(userID string) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(userID)
}

// UpdateProfile replaces the stored profile fields for a user. The user ID
// comes from the authenticated principal, never from the request body.
func (s *ProfileService) UpdateProfile(userID string, profile *models.Profile) error {
	profile.UserID = userID
	return s.profileRepo.Update(profile)
}
