package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the dashboard settings. Every field has a default so
// the binary runs without a config file.
type Config struct {
	// LogRoot is the session log store root.
	LogRoot string `yaml:"log_root"`
	// ChatDB is the SQLite file holding chat metadata.
	ChatDB string `yaml:"chat_db"`
	// PreviewMaxChars bounds session preview length.
	PreviewMaxChars int `yaml:"preview_max_chars"`
	// PageSize is the default session page size.
	PageSize int `yaml:"page_size"`
}

// Default returns the built-in configuration.
func Default() (Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("failed to get home directory: %w", err)
	}
	return Config{
		LogRoot:         filepath.Join(homeDir, ".claude", "projects"),
		ChatDB:          filepath.Join(homeDir, ".claude", "dashboard", "chats.db"),
		PreviewMaxChars: 120,
		PageSize:        25,
	}, nil
}

// Load reads the config file at path, filling unset fields with
// defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if fileCfg.LogRoot != "" {
		cfg.LogRoot = fileCfg.LogRoot
	}
	if fileCfg.ChatDB != "" {
		cfg.ChatDB = fileCfg.ChatDB
	}
	if fileCfg.PreviewMaxChars > 0 {
		cfg.PreviewMaxChars = fileCfg.PreviewMaxChars
	}
	if fileCfg.PageSize > 0 {
		cfg.PageSize = fileCfg.PageSize
	}
	return cfg, nil
}

// DefaultPath returns the conventional config file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".claude", "dashboard", "config.yaml"), nil
}
