package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the application configuration. It holds machine-level settings
// only; everything personal (profile fields, API secrets) lives in the
// profile store, not here.
type Config struct {
	UI        UIConfig        `json:"ui"`
	Data      DataConfig      `json:"data"`
	Endpoints EndpointsConfig `json:"endpoints"`
	Requests  RequestsConfig  `json:"requests"`
}

// UIConfig represents UI configuration.
type UIConfig struct {
	WindowWidth     int    `json:"window_width"`
	WindowHeight    int    `json:"window_height"`
	DefaultProvider string `json:"default_provider"`
	DefaultLanguage string `json:"default_language"`
}

// DataConfig represents data storage configuration.
type DataConfig struct {
	DBPath string `json:"db_path"`
}

// EndpointsConfig overrides the provider base URLs. Empty means the real
// service; tests and self-hosted gateways set these.
type EndpointsConfig struct {
	OpenAI string `json:"openai,omitempty"`
	Gemini string `json:"gemini,omitempty"`
	Notion string `json:"notion,omitempty"`
}

// RequestsConfig holds the opt-in safety knobs. All default to off: the
// faithful behavior is no timeout, no in-flight guard, and the greedy JSON
// heuristic.
type RequestsConfig struct {
	TimeoutSeconds int  `json:"timeout_seconds,omitempty"`
	SingleFlight   bool `json:"single_flight,omitempty"`
	StrictExtract  bool `json:"strict_extract,omitempty"`
}

// LoadConfig loads configuration from file.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.Data.DBPath != "" {
		config.Data.DBPath = expandPath(config.Data.DBPath)
	}

	return &config, nil
}

// SaveConfig saves configuration to file.
func SaveConfig(configPath string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// expandPath expands ~ and relative paths.
func expandPath(path string) string {
	if len(path) == 0 {
		return path
	}

	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	absPath, err := filepath.Abs(path)
	if err == nil {
		return absPath
	}

	return path
}

// GetConfigPath returns the default config path.
func GetConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "./config/default.json"
	}

	return filepath.Join(configDir, "lifelog", "config.json")
}

// DefaultConfig is what a fresh install runs with.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			WindowWidth:     480,
			WindowHeight:    720,
			DefaultProvider: "ChatGPT",
			DefaultLanguage: "English",
		},
		Data: DataConfig{
			DBPath: "./data/lifelog.db",
		},
	}
}

// EnsureDefaultConfig creates a default config file if it doesn't exist.
func EnsureDefaultConfig() (string, error) {
	configPath := GetConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if err := SaveConfig(configPath, DefaultConfig()); err != nil {
		return "", err
	}

	return configPath, nil
}
