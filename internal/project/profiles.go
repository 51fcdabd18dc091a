package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/atlasforge/atlasforge/internal/model"
)

// DefaultProfilesPath returns the default file path for saved profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveProfiles saves generation profiles to a JSON file.
func SaveProfiles(path string, profiles []model.Profile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProfiles loads generation profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadProfiles(path string) ([]model.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Profile{}, nil
		}
		return nil, err
	}

	var profiles []model.Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// FindProfile returns the profile with the given name, matching by name
// first and falling back to ID.
func FindProfile(profiles []model.Profile, name string) (model.Profile, bool) {
	for _, p := range profiles {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range profiles {
		if p.ID == name {
			return p, true
		}
	}
	return model.Profile{}, false
}

// ExportProfile exports a single profile to a JSON file (for sharing).
func ExportProfile(path string, profile model.Profile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportProfile imports a single profile from a JSON file.
func ImportProfile(path string) (model.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Profile{}, err
	}

	var profile model.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.Profile{}, err
	}

	if profile.Name == "" {
		return model.Profile{}, errors.New("imported profile has no name")
	}
	return profile, nil
}
