package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"statup/internal/core/domain"
)

// Environment overrides for the list-valued settings. Both take
// comma-separated values.
const (
	EnvProfiles      = "STATUS_PROFILES"
	EnvCollaborators = "EMAIL_ADDRESS"
)

type Config struct {
	// Profiles are the project/account contexts statuses are grouped
	// under, one subfolder each.
	Profiles []string `yaml:"profiles"`

	// Collaborators receive write access to the root status folder when
	// it is first created.
	Collaborators []string `yaml:"collaborators"`

	// RootFolder is the name of the top-level folder holding all
	// profile subfolders.
	RootFolder string `yaml:"root_folder"`

	// CredentialsFile is where the service-account artifact lives (or
	// gets written when assembled from the environment).
	CredentialsFile string `yaml:"credentials_file"`

	// ProfileSheetURL, when set, is shown in the form header as a
	// reference for profile and project names.
	ProfileSheetURL string `yaml:"profile_sheet_url"`

	Editor string `yaml:"editor"`

	// UI Settings
	ColorTheme        string `yaml:"color_theme"`
	DisplayDateFormat string `yaml:"display_date_format"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		Profiles:          []string{},
		Collaborators:     []string{},
		RootFolder:        "status",
		CredentialsFile:   "",
		ColorTheme:        "auto",
		DisplayDateFormat: "2006-01-02",
	}
}

// Load reads configuration from the specified file path, falling back
// to defaults when the file does not exist, then applies environment
// overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.RootFolder == "" {
		cfg.RootFolder = "status"
	}
	if cfg.ColorTheme == "" {
		cfg.ColorTheme = "auto"
	}
	if cfg.DisplayDateFormat == "" {
		cfg.DisplayDateFormat = "2006-01-02"
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides list settings from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvProfiles); v != "" {
		c.Profiles = splitList(v)
	}
	if v := os.Getenv(EnvCollaborators); v != "" {
		c.Collaborators = splitList(v)
	}
}

// splitList splits a comma-separated value, trimming whitespace and
// dropping empty items.
func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Validate checks the settings a submission depends on.
func (c *Config) Validate() error {
	if len(c.Profiles) == 0 {
		return &domain.ConfigurationError{
			Reason: fmt.Sprintf("no profiles configured; set %s or add profiles to the config file", EnvProfiles),
		}
	}
	return nil
}

// Save writes the configuration back to the given path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
