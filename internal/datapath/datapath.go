package datapath

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the per-user directories owned by winstate.
const AppName = "winstate"

// DataDir returns the user data directory where window state is kept.
// Priority:
// 1) $XDG_DATA_HOME/winstate (if set)
// 2) ~/.local/share/winstate
func DataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, AppName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", AppName), nil
}

// ConfigDir returns the user configuration directory.
// Priority:
// 1) $XDG_CONFIG_HOME/winstate (if set)
// 2) ~/.config/winstate
func ConfigDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", AppName), nil
}

// ConfigPath returns the config file location.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
