package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"

	"glint/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version         int        `toml:"version"`
	AppDirs         []string   `toml:"app_dirs"`
	PollIntervalMS  int        `toml:"poll_interval_ms"`
	HistoryCapacity int        `toml:"history_capacity"`
	UnfilteredLimit int        `toml:"unfiltered_limit"`
	UISettings      UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	MaxVisibleResults int  `toml:"max_visible_results"`
	ShowScores        bool `toml:"show_scores"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	glintDir := filepath.Join(configDir, "glint")
	os.MkdirAll(glintDir, 0755)

	return &configService{
		filePath: filepath.Join(glintDir, "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	// Return defaults when no config file exists yet
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()

		if cs.bus != nil {
			cs.bus.Publish(eventbus.ConfigLoadedEvent{AppDirs: cfg.AppDirs})
		}

		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{AppDirs: cfg.AppDirs})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyDefaults fills in zero-valued fields so a sparse config file still
// yields a usable configuration.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if len(c.AppDirs) == 0 {
		c.AppDirs = def.AppDirs
	}
	if c.PollIntervalMS <= 0 {
		c.PollIntervalMS = def.PollIntervalMS
	}
	if c.HistoryCapacity <= 0 {
		c.HistoryCapacity = def.HistoryCapacity
	}
	if c.UnfilteredLimit <= 0 {
		c.UnfilteredLimit = def.UnfilteredLimit
	}
	if c.UISettings.MaxVisibleResults <= 0 {
		c.UISettings.MaxVisibleResults = def.UISettings.MaxVisibleResults
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:         1,
		AppDirs:         defaultAppDirs(),
		PollIntervalMS:  500,
		HistoryCapacity: 50,
		UnfilteredLimit: 10,
		UISettings: UISettings{
			MaxVisibleResults: 12,
			ShowScores:        false,
		},
	}
}

// defaultAppDirs returns the platform's conventional application
// locations.
func defaultAppDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	switch runtime.GOOS {
	case "darwin":
		return []string{
			"/Applications",
			filepath.Join(home, "Applications"),
		}
	default:
		return []string{
			"/usr/share/applications",
			"/usr/local/share/applications",
			filepath.Join(home, ".local", "share", "applications"),
		}
	}
}
