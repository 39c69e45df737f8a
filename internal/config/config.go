// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for secconsole.
type Config struct {
	DataDir       string `mapstructure:"data_dir" yaml:"data_dir"`
	SourcesDir    string `mapstructure:"sources_dir" yaml:"sources_dir"`
	LogLevel      string `mapstructure:"log_level" yaml:"log_level"`
	LogFile       string `mapstructure:"log_file" yaml:"log_file"`
	StrictBounds  bool   `mapstructure:"strict_bounds" yaml:"strict_bounds"`
	PersistDrafts bool   `mapstructure:"persist_drafts" yaml:"persist_drafts"`
}

// keys lists every config key with its default, in the order they are bound.
var keys = []struct {
	name  string
	value any
}{
	{"data_dir", ".secconsole"},
	{"sources_dir", "log-sources"},
	{"log_level", "info"},
	{"log_file", ""},
	{"strict_bounds", false},
	{"persist_drafts", true},
}

// Default returns the configuration used when no file or env var overrides
// anything.
func Default() *Config {
	return &Config{
		DataDir:       ".secconsole",
		SourcesDir:    "log-sources",
		LogLevel:      "info",
		PersistDrafts: true,
	}
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("secconsole")

	for _, k := range keys {
		v.SetDefault(k.name, k.value)
	}

	// Setup ENV binding with SECCONSOLE_ prefix
	v.SetEnvPrefix("SECCONSOLE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings for better bool/int parsing
	for _, k := range keys {
		env := "SECCONSOLE_" + strings.ToUpper(k.name)
		if err := v.BindEnv(k.name, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", k.name, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/secconsole/secconsole.yml or $XDG_CONFIG_HOME/secconsole/secconsole.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "secconsole", "secconsole.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "secconsole", "secconsole.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "secconsole.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate checks that the config can drive the console.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is required")
	}
	if strings.TrimSpace(c.SourcesDir) == "" {
		return fmt.Errorf("sources_dir is required")
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	return nil
}

// StateDir returns the directory for UI state and draft storage.
func (c *Config) StateDir() string {
	return c.DataDir
}

// NATSDir returns the JetStream storage directory under the data dir.
func (c *Config) NATSDir() string {
	return filepath.Join(c.DataDir, "nats")
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
