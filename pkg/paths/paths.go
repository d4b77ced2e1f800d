package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds the resolved locations of statup's config and data files.
type Paths struct {
	DataDir         string
	ConfigFile      string
	CredentialsFile string
}

// New resolves the application paths. Follows the XDG Base Directory
// specification on Unix and uses AppData on Windows.
func New() (*Paths, error) {
	dataDir, err := getDataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine data directory: %w", err)
	}
	configFile, err := getConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}

	return &Paths{
		DataDir:         dataDir,
		ConfigFile:      configFile,
		CredentialsFile: filepath.Join(dataDir, "credentials.json"),
	}, nil
}

// EnsureData creates the data directory when missing.
func (p *Paths) EnsureData() error {
	if err := os.MkdirAll(p.DataDir, 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

func getDataDir() (string, error) {
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, "statup"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "statup"), nil
	}

	return filepath.Join(homeDir, ".local", "share", "statup"), nil
}

func getConfigFile() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "statup", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "statup", "config.yaml"), nil
	}

	return filepath.Join(homeDir, ".config", "statup", "config.yaml"), nil
}
