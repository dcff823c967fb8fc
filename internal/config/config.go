package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete shuttle configuration
type Config struct {
	Copy    CopyConfig    `mapstructure:"copy"`
	Watch   WatchConfig   `mapstructure:"watch"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CopyConfig controls the copy pipeline
type CopyConfig struct {
	// BufferSize is the shared buffer capacity in bytes; one fill/drain
	// round moves at most this many bytes (default: 32768)
	BufferSize int `mapstructure:"buffer_size"`
}

// WatchConfig controls watch mode
type WatchConfig struct {
	// DebounceMs is how long to wait after the last source change before
	// re-running the copy, in milliseconds (default: 250)
	DebounceMs int `mapstructure:"debounce_ms"`
}

// TUIConfig controls the terminal progress display
type TUIConfig struct {
	// Progress enables the progress bar when stdout is a terminal (default: true)
	Progress bool `mapstructure:"progress"`
}

// LoggingConfig controls structured logging
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory for the JSON log file; empty disables file
	// logging entirely
	Dir string `mapstructure:"dir"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Copy: CopyConfig{
			BufferSize: 32768,
		},
		Watch: WatchConfig{
			DebounceMs: 250,
		},
		TUI: TUIConfig{
			Progress: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   "",
		},
	}
}

// SetDefaults registers all configuration defaults with viper.
// This ensures defaults are available even without a config file.
func SetDefaults() {
	defaults := Default()

	// Copy defaults
	viper.SetDefault("copy.buffer_size", defaults.Copy.BufferSize)

	// Watch defaults
	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)

	// TUI defaults
	viper.SetDefault("tui.progress", defaults.TUI.Progress)

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load unmarshals and validates the current viper configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the directory where the config file lives,
// $HOME/.config/shuttle by default.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "shuttle")
	}
	return filepath.Join(home, ".config", "shuttle")
}

// ConfigFile returns the full path of the default config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
