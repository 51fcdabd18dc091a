package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atlasforge/atlasforge/internal/model"
)

// SaveProject persists a project to the given path as JSON.
func SaveProject(path string, p model.Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProject reads a project from the given path.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("invalid project file: %w", err)
	}
	if p.ID == "" {
		return model.Project{}, fmt.Errorf("project file has no id")
	}
	return p, nil
}
