package repositories

import "storefront/internal/models"

// ProfileRepository defines the interface for profile data access.
// Every user has at most one profile, keyed by user ID.
type ProfileRepository interface {
	Create(profile *models.Profile) error
	GetByUserID(userID string) (*models.Profile, error)
	Update(profile *models.Profile) error
}
