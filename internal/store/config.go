package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

type GlobalConfig struct {
	// DataDir is the directory holding listboard.sqlite. Empty means <configDir>/data.
	DataDir string `json:"dataDir,omitempty"`

	// LogLevel is one of debug|info|warn|error.
	LogLevel string `json:"logLevel,omitempty"`
	// LogFile receives TUI logs. The TUI discards logs when empty.
	LogFile  string `json:"logFile,omitempty"`

	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// DragActivationDistance is how far (in cells) the pointer must travel after a press
	// before a drag starts. Zero means the default.
	DragActivationDistance int `json:"dragActivationDistance,omitempty"`

	// DefaultView is notes|todos.
	DefaultView string `json:"defaultView,omitempty"`
	NoColor     bool   `json:"noColor,omitempty"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.listboard).
	if v := strings.TrimSpace(os.Getenv("LISTBOARD_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".listboard"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// ResolveDataDir picks the data directory: flag, then LISTBOARD_DIR, then config, then
// <configDir>/data.
func ResolveDataDir(flagDir string, cfg *GlobalConfig) (string, error) {
	if v := strings.TrimSpace(flagDir); v != "" {
		return filepath.Clean(v), nil
	}
	if v := strings.TrimSpace(os.Getenv("LISTBOARD_DIR")); v != "" {
		return filepath.Clean(v), nil
	}
	if cfg != nil {
		if v := strings.TrimSpace(cfg.DataDir); v != "" {
			return filepath.Clean(v), nil
		}
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// DragActivationDistance returns the configured threshold, or def when unset.
func (c *GlobalConfig) DragActivationDistance(def int) int {
	if c == nil || c.TUI == nil || c.TUI.DragActivationDistance <= 0 {
		return def
	}
	return c.TUI.DragActivationDistance
}
