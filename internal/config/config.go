// Package config handles configuration management using Viper
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`

	// Where frame lines go
	Output OutputConfig `mapstructure:"output"`

	// Compositor connection
	Wayland WaylandConfig `mapstructure:"wayland"`

	// Sub-event recording
	Trace TraceConfig `mapstructure:"trace"`

	// Synthetic input
	Inject InjectConfig `mapstructure:"inject"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // Override LOG_LEVEL env var
}

// OutputConfig selects the diagnostic stream for frame lines
type OutputConfig struct {
	Target       string `mapstructure:"target"`        // "stderr", "stdout" or a file path
	FrameHistory int    `mapstructure:"frame_history"` // Frames kept by the TUI
}

// WaylandConfig contains compositor connection settings
type WaylandConfig struct {
	Display string `mapstructure:"display"` // Empty means $WAYLAND_DISPLAY
}

// TraceConfig contains recording settings
type TraceConfig struct {
	RecordPath string `mapstructure:"record_path"` // Empty disables recording
}

// InjectConfig contains uinput settings
type InjectConfig struct {
	Device      string `mapstructure:"device"`
	StepDelayMs int    `mapstructure:"step_delay_ms"`
}

const (
	TargetStderr = "stderr"
	TargetStdout = "stdout"
)

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Logging: LoggingConfig{
			LogLevel: "", // Empty means use LOG_LEVEL env var
		},
		Output: OutputConfig{
			Target:       TargetStderr,
			FrameHistory: 200,
		},
		Wayland: WaylandConfig{
			Display: "",
		},
		Trace: TraceConfig{
			RecordPath: "",
		},
		Inject: InjectConfig{
			Device:      "/dev/uinput",
			StepDelayMs: 50,
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("wlptr")
	viper.SetConfigType("toml")

	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		// Add config paths in order of precedence
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			viper.AddConfigPath(filepath.Join(xdg, "wlptr"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "wlptr"))
		}
		viper.AddConfigPath(".") // Current directory (lowest priority)
	}

	viper.SetEnvPrefix("WLPTR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults - need to set individual fields for proper merging
	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)

	viper.SetDefault("output.target", DefaultConfig.Output.Target)
	viper.SetDefault("output.frame_history", DefaultConfig.Output.FrameHistory)

	viper.SetDefault("wayland.display", DefaultConfig.Wayland.Display)

	viper.SetDefault("trace.record_path", DefaultConfig.Trace.RecordPath)

	viper.SetDefault("inject.device", DefaultConfig.Inject.Device)
	viper.SetDefault("inject.step_delay_ms", DefaultConfig.Inject.StepDelayMs)

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	return nil
}

// Validate checks values viper cannot type-check
func (c *Config) Validate() error {
	if c.Output.Target == "" {
		return fmt.Errorf("output.target must not be empty")
	}
	if c.Output.FrameHistory < 1 {
		return fmt.Errorf("output.frame_history must be positive, got %d", c.Output.FrameHistory)
	}
	if c.Inject.StepDelayMs < 0 {
		return fmt.Errorf("inject.step_delay_ms must not be negative, got %d", c.Inject.StepDelayMs)
	}
	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		return &DefaultConfig
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// Save writes the current configuration to file
func Save() error {
	configPath := GetConfigPath()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}

	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wlptr", "wlptr.toml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "wlptr.toml"
	}

	return filepath.Join(home, ".config", "wlptr", "wlptr.toml")
}
