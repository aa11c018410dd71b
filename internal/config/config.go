// ABOUTME: Settings loading with global + project config deep merge
// ABOUTME: JSON-based configuration using encoding/json; no external libs

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings holds the merged demo configuration.
type Settings struct {
	Fill    string `json:"fill,omitempty"`
	Empty   string `json:"empty,omitempty"`
	Steps   int    `json:"steps,omitempty"`
	DelayMS int    `json:"delay_ms,omitempty"`
	Workers int    `json:"workers,omitempty"`
	Verbose bool   `json:"verbose,omitempty"`
}

// GlobalConfigFile returns the per-user settings path.
func GlobalConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pinbar", "settings.json")
}

// ProjectConfigFile returns the per-directory settings path.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(projectRoot, ".pinbar.json")
}

// Load reads and merges global and project-local settings.
// Project settings override global settings. Missing files are fine.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return merge(global, project), nil
}

// loadFile reads a Settings from a JSON file. Returns zero Settings if
// the file does not exist.
func loadFile(path string) (*Settings, error) {
	if path == "" {
		return &Settings{}, os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge deep-merges project settings onto global settings.
// Non-zero project values override global values.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.Fill != "" {
		result.Fill = project.Fill
	}
	if project.Empty != "" {
		result.Empty = project.Empty
	}
	if project.Steps != 0 {
		result.Steps = project.Steps
	}
	if project.DelayMS != 0 {
		result.DelayMS = project.DelayMS
	}
	if project.Workers != 0 {
		result.Workers = project.Workers
	}
	if project.Verbose {
		result.Verbose = true
	}

	return &result
}
