package ports

import "github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/models"

// ProfileRepository stores and manages printer profiles. Implementations
// live in the infrastructure layer.
type ProfileRepository interface {
	// LoadProfiles loads all profiles from the store.
	LoadProfiles() ([]*models.PrinterProfile, error)

	// SaveProfiles replaces the stored profile set.
	SaveProfiles(profiles []*models.PrinterProfile) error

	// UpsertProfile adds or updates a profile.
	UpsertProfile(profile *models.PrinterProfile) error

	// DeleteProfile removes a profile by ID.
	DeleteProfile(id string) error

	// FindProfile finds a profile by ID; a miss returns (nil, nil).
	FindProfile(id string) (*models.PrinterProfile, error)

	// ClearProfiles removes all profiles.
	ClearProfiles() error

	// UpdateLastUsed stamps a profile with the current time.
	UpdateLastUsed(id string) error
}
