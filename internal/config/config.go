package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	General       GeneralConfig       `toml:"general"`
	Browser       BrowserConfig       `toml:"browser"`
	Notifications NotificationsConfig `toml:"notifications"`
	Web           WebConfig           `toml:"web"`
}

// GeneralConfig holds general settings
type GeneralConfig struct {
	OutputDir    string `toml:"output_dir"`
	DatabasePath string `toml:"database_path"`
	JobsDir      string `toml:"jobs_dir"`
}

// BrowserConfig holds browser launch settings
type BrowserConfig struct {
	Headless  bool    `toml:"headless"`
	TimeoutMS float64 `toml:"timeout_ms"`
}

// NotificationsConfig holds notification settings
type NotificationsConfig struct {
	Desktop      bool   `toml:"desktop"`
	SlackWebhook string `toml:"slack_webhook"`
}

// WebConfig holds web UI settings
type WebConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		General: GeneralConfig{
			OutputDir:    "output",
			DatabasePath: filepath.Join(home, ".formrunner", "runs.db"),
			JobsDir:      filepath.Join(home, ".formrunner", "jobs"),
		},
		Browser: BrowserConfig{
			Headless:  true,
			TimeoutMS: 20000,
		},
		Notifications: NotificationsConfig{
			Desktop: true,
		},
		Web: WebConfig{
			Port: 8080,
			Host: "127.0.0.1",
		},
	}
}

// Load reads configuration from a TOML file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Expand paths
	cfg.General.OutputDir = ExpandPath(cfg.General.OutputDir)
	cfg.General.DatabasePath = ExpandPath(cfg.General.DatabasePath)
	cfg.General.JobsDir = ExpandPath(cfg.General.JobsDir)

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv layers environment overrides on top of file/default values.
func applyEnv(cfg *Config) {
	if v := os.Getenv("FORMRUNNER_HEADLESS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Browser.Headless = b
		}
	}
	if v := os.Getenv("FORMRUNNER_TIMEOUT"); v != "" {
		if ms, err := strconv.ParseFloat(v, 64); err == nil && ms > 0 {
			cfg.Browser.TimeoutMS = ms
		}
	}
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "formrunner", "config.toml")
}
