// Package config loads broker credentials and runtime settings from a
// YAML or JSON file with environment variable overrides. Environment
// variables win over the file so deployments can keep tokens out of
// checked-in configs.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the resolved application configuration.
type Config struct {
	AccountID string // Tradier account ID
	Token     string // bearer access token
	Sandbox   bool   // target the sandbox environment

	LogLevel string
	LogFile  string

	// WatchSymbols is the default symbol set for the market stream
	// commands.
	WatchSymbols []string
}

// ConfigFile mirrors the on-disk layout for YAML/JSON parsing.
type ConfigFile struct {
	Tradier struct {
		AccountID string `yaml:"account_id" json:"account_id"`
		Token     string `yaml:"token" json:"token"`
		Sandbox   bool   `yaml:"sandbox" json:"sandbox"`
	} `yaml:"tradier" json:"tradier"`
	LogLevel     string   `yaml:"log_level" json:"log_level"`
	LogFile      string   `yaml:"log_file" json:"log_file"`
	WatchSymbols []string `yaml:"watch_symbols" json:"watch_symbols"`
}

var (
	globalConfig   *Config
	configFilePath string
)

// SetConfigPath sets the file Load reads from.
func SetConfigPath(path string) {
	configFilePath = path
}

// GetConfigPath returns the configured file path.
func GetConfigPath() string {
	return configFilePath
}

// Load loads configuration from the configured path. Repeated calls with
// the same path return the cached config.
func Load() (*Config, error) {
	return LoadFromFile(configFilePath)
}

// LoadFromFile loads configuration from filePath. An empty path loads
// from the environment alone.
func LoadFromFile(filePath string) (*Config, error) {
	if globalConfig != nil && configFilePath == filePath {
		return globalConfig, nil
	}

	var configFile *ConfigFile
	if filePath != "" {
		var err error
		configFile, err = loadConfigFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("load config file %s: %w", filePath, err)
		}
	}

	config := &Config{
		AccountID:    firstNonEmpty(os.Getenv("TRADIER_ACCOUNT_ID"), fileString(configFile, func(cf *ConfigFile) string { return cf.Tradier.AccountID })),
		Token:        firstNonEmpty(os.Getenv("TRADIER_TOKEN"), fileString(configFile, func(cf *ConfigFile) string { return cf.Tradier.Token })),
		Sandbox:      parseBoolEnv("TRADIER_SANDBOX", fileBool(configFile, func(cf *ConfigFile) bool { return cf.Tradier.Sandbox })),
		LogLevel:     firstNonEmpty(os.Getenv("LOG_LEVEL"), fileString(configFile, func(cf *ConfigFile) string { return cf.LogLevel }), "info"),
		LogFile:      firstNonEmpty(os.Getenv("LOG_FILE"), fileString(configFile, func(cf *ConfigFile) string { return cf.LogFile })),
		WatchSymbols: parseSymbols(os.Getenv("WATCH_SYMBOLS"), configFile),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	globalConfig = config
	configFilePath = filePath
	return config, nil
}

// Get returns the cached config, nil before the first successful Load.
func Get() *Config {
	return globalConfig
}

// Validate checks that the credentials required for any API call are
// present.
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("TRADIER_TOKEN is not set")
	}
	if c.AccountID == "" {
		return fmt.Errorf("TRADIER_ACCOUNT_ID is not set")
	}
	return nil
}

func loadConfigFile(filePath string) (*ConfigFile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var configFile ConfigFile
	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &configFile); err != nil {
			return nil, fmt.Errorf("parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &configFile); err != nil {
			return nil, fmt.Errorf("parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %s (want .yaml, .yml, or .json)", ext)
	}
	return &configFile, nil
}

func fileString(cf *ConfigFile, getter func(*ConfigFile) string) string {
	if cf == nil {
		return ""
	}
	return getter(cf)
}

func fileBool(cf *ConfigFile, getter func(*ConfigFile) bool) bool {
	if cf == nil {
		return false
	}
	return getter(cf)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// parseSymbols splits a comma separated env list, falling back to the
// file's watch_symbols.
func parseSymbols(env string, cf *ConfigFile) []string {
	if env == "" {
		if cf == nil {
			return nil
		}
		return cf.WatchSymbols
	}
	parts := strings.Split(env, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
