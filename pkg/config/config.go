package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/muninn/pkg/codec"
)

// Region backing kinds.
const (
	BackingStatic = "static"
	BackingFile   = "file"
	BackingRaw    = "raw"
)

// Config represents the Muninn agent configuration.
type Config struct {
	Region     Region  `yaml:"region"`
	ArchiveDir string  `yaml:"archive_dir"`
	Port       int     `yaml:"port"`
	Bind       string  `yaml:"bind"`
	Minimal    bool    `yaml:"minimal"`
	Logging    Logging `yaml:"logging"`
}

// Region describes where the persistent record region lives. The bounds
// are deployment constants; they are read from here, never discovered.
//
//   - static: a process-owned buffer of Size bytes (development only; a
//     static region does not survive a machine reset)
//   - file: Size bytes of the file or device node at Path, starting at
//     byte offset Start
//   - raw: the already-mapped address range [Start, Start+Size)
type Region struct {
	Backing string `yaml:"backing"`
	Path    string `yaml:"path"`
	Start   uint64 `yaml:"start"`
	Size    int    `yaml:"size"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Region: Region{
			Backing: BackingStatic,
			Size:    4096,
		},
		ArchiveDir: "./data/archive",
		Port:       9323,
		Bind:       "127.0.0.1",
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

// SaveConfig saves the configuration to the specified path.
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration describes a usable deployment.
func (c *Config) Validate() error {
	switch c.Region.Backing {
	case BackingStatic:
	case BackingFile:
		if c.Region.Path == "" {
			return fmt.Errorf("region backing %q requires a path", c.Region.Backing)
		}
	case BackingRaw:
		if c.Region.Start == 0 {
			return fmt.Errorf("region backing %q requires a start address", c.Region.Backing)
		}
	default:
		return fmt.Errorf("unknown region backing %q", c.Region.Backing)
	}

	if c.Region.Size < codec.HeaderSize {
		return fmt.Errorf("region size %d is below the %d-byte record header", c.Region.Size, codec.HeaderSize)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration path.
func GetDefaultConfigPath() string {
	// The agent normally runs as a system service on the device.
	return "/etc/muninn/config.yaml"
}

// ConfigExists checks if a configuration file exists.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
