package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/models"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/ports"
)

// FileProfileRepository implements ports.ProfileRepository on a JSON file.
type FileProfileRepository struct {
	mu       sync.Mutex
	filePath string
	profiles []*models.PrinterProfile
}

// NewFileProfileRepository creates a repository backed by the given file.
// A missing file is treated as an empty store.
func NewFileProfileRepository(filePath string) (ports.ProfileRepository, error) {
	repo := &FileProfileRepository{
		filePath: filePath,
	}

	if err := repo.loadFromFile(); err != nil {
		return nil, fmt.Errorf("init profile repository: %w", err)
	}

	return repo, nil
}

// LoadProfiles loads all profiles from the store.
func (r *FileProfileRepository) LoadProfiles() ([]*models.PrinterProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.loadFromFile(); err != nil {
		return nil, err
	}

	// A copy shields the internal slice from external mutation.
	result := make([]*models.PrinterProfile, len(r.profiles))
	copy(result, r.profiles)
	return result, nil
}

// SaveProfiles replaces the stored profile set.
func (r *FileProfileRepository) SaveProfiles(profiles []*models.PrinterProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles = make([]*models.PrinterProfile, len(profiles))
	copy(r.profiles, profiles)

	return r.saveToFile()
}

// UpsertProfile adds or updates a profile.
func (r *FileProfileRepository) UpsertProfile(profile *models.PrinterProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := false
	for i, p := range r.profiles {
		if p.ID == profile.ID {
			r.profiles[i] = profile
			found = true
			break
		}
	}

	if !found {
		r.profiles = append(r.profiles, profile)
	}

	return r.saveToFile()
}

// DeleteProfile removes a profile by ID.
func (r *FileProfileRepository) DeleteProfile(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.profiles {
		if p.ID == id {
			r.profiles = append(r.profiles[:i], r.profiles[i+1:]...)
			return r.saveToFile()
		}
	}

	return fmt.Errorf("profile %s not found", id)
}

// FindProfile finds a profile by ID; a miss returns (nil, nil).
func (r *FileProfileRepository) FindProfile(id string) (*models.PrinterProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.profiles {
		if p.ID == id {
			return p, nil
		}
	}

	return nil, nil
}

// ClearProfiles removes all profiles.
func (r *FileProfileRepository) ClearProfiles() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles = make([]*models.PrinterProfile, 0)
	return r.saveToFile()
}

// UpdateLastUsed stamps a profile with the current time.
func (r *FileProfileRepository) UpdateLastUsed(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.profiles {
		if p.ID == id {
			r.profiles[i].LastUsed = time.Now()
			return r.saveToFile()
		}
	}

	return nil
}

// loadFromFile reads the JSON file; callers must hold the mutex.
func (r *FileProfileRepository) loadFromFile() error {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			r.profiles = make([]*models.PrinterProfile, 0)
			return nil
		}
		return fmt.Errorf("read profiles file: %w", err)
	}

	var pd struct {
		Profiles []*models.PrinterProfile `json:"profiles"`
	}

	if err := json.Unmarshal(data, &pd); err != nil {
		r.profiles = make([]*models.PrinterProfile, 0)
		return fmt.Errorf("parse profiles file: %w", err)
	}

	r.profiles = pd.Profiles
	return nil
}

// saveToFile writes the JSON file; callers must hold the mutex.
func (r *FileProfileRepository) saveToFile() error {
	dir := filepath.Dir(r.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create profiles directory: %w", err)
	}

	data := struct {
		Profiles []*models.PrinterProfile `json:"profiles"`
	}{
		Profiles: r.profiles,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}

	if err := os.WriteFile(r.filePath, jsonData, 0644); err != nil {
		return fmt.Errorf("write profiles file: %w", err)
	}

	return nil
}
