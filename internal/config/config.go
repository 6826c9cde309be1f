// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Store backends
const (
	StoreFile   = "file"
	StoreNATS   = "nats"
	StoreMemory = "memory"
)

// storeKeyPattern matches keys that are safe as a file name and as a NATS KV
// key: dot-separated tokens of [A-Za-z0-9_=-].
var storeKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_=-]+(\.[A-Za-z0-9_=-]+)*$`)

// Config holds all configuration values for shopcfg.
type Config struct {
	Catalog       string        `mapstructure:"catalog" yaml:"catalog"`
	DataDir       string        `mapstructure:"data_dir" yaml:"data_dir"`
	Store         string        `mapstructure:"store" yaml:"store"`
	StoreKey      string        `mapstructure:"store_key" yaml:"store_key"`
	Endpoint      string        `mapstructure:"endpoint" yaml:"endpoint"`
	SubmitTimeout time.Duration `mapstructure:"submit_timeout" yaml:"submit_timeout"`
	// ReviewLimit is how many options per category the review screen shows.
	// The checkout page is built around a two-up comparison; other values
	// change that layout.
	ReviewLimit   int           `mapstructure:"review_limit" yaml:"review_limit"`
	Locale        string        `mapstructure:"locale" yaml:"locale"`
	Seed          int64         `mapstructure:"seed" yaml:"seed"`
	LogLevel      string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile       string        `mapstructure:"log_file" yaml:"log_file"`
}

// Default returns the configuration used when no file or env var overrides a key.
func Default() *Config {
	return &Config{
		Catalog:       "",
		DataDir:       ".shopcfg",
		Store:         StoreFile,
		StoreKey:      "upbSelections",
		Endpoint:      "http://localhost:8000/api/save_selection",
		SubmitTimeout: 15 * time.Second,
		ReviewLimit:   2,
		Locale:        "de",
		Seed:          0,
		LogLevel:      "info",
		LogFile:       "",
	}
}

// Load loads configuration with full precedence:
// ENV vars > project config > XDG global config > defaults.
// CLI flags are applied on top by the commands.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("shopcfg")

	def := Default()
	v.SetDefault("catalog", def.Catalog)
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("store", def.Store)
	v.SetDefault("store_key", def.StoreKey)
	v.SetDefault("endpoint", def.Endpoint)
	v.SetDefault("submit_timeout", def.SubmitTimeout)
	v.SetDefault("review_limit", def.ReviewLimit)
	v.SetDefault("locale", def.Locale)
	v.SetDefault("seed", def.Seed)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)

	v.SetEnvPrefix("SHOPCFG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit bindings so typed values (durations, ints) parse from env
	for _, key := range []string{
		"catalog", "data_dir", "store", "store_key", "endpoint", "submit_timeout",
		"review_limit", "locale", "seed", "log_level", "log_file",
	} {
		if err := v.BindEnv(key, "SHOPCFG_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

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

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreNATS, StoreMemory:
	default:
		return fmt.Errorf("invalid store %q (want %s, %s or %s)", c.Store, StoreFile, StoreNATS, StoreMemory)
	}
	if c.StoreKey == "" {
		return fmt.Errorf("store_key cannot be empty")
	}
	if !storeKeyPattern.MatchString(c.StoreKey) {
		return fmt.Errorf("invalid store_key %q (want dot-separated tokens of [A-Za-z0-9_=-])", c.StoreKey)
	}
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint cannot be empty")
	}
	if c.SubmitTimeout <= 0 {
		return fmt.Errorf("submit_timeout must be > 0, got %s", c.SubmitTimeout)
	}
	if c.ReviewLimit < 1 {
		return fmt.Errorf("review_limit must be >= 1 (2 keeps the two-up comparison), got %d", c.ReviewLimit)
	}
	if c.Store != StoreMemory && c.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty for store %q", c.Store)
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/shopcfg/shopcfg.yml or $XDG_CONFIG_HOME/shopcfg/shopcfg.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "shopcfg", "shopcfg.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "shopcfg", "shopcfg.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "shopcfg.yml"
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

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
