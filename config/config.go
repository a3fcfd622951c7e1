package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the mend configuration
type Config struct {
	Provider    string  `json:"provider"`      // LLM provider: openai, anthropic, ollama
	Model       string  `json:"model"`         // Model name within the provider
	APIKey      string  `json:"api_key"`       // API key for the provider
	BaseURL     string  `json:"base_url"`      // Base URL override (optional)
	MaxTokens   int     `json:"max_tokens"`    // Maximum tokens per completion
	Temperature float64 `json:"temperature"`   // Sampling temperature
	MaxFileSize int64   `json:"max_file_size"` // Maximum file size to scan in bytes
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		Provider:    "openai",
		Model:       "gpt-4o",
		MaxTokens:   4096,
		Temperature: 0.2,
		MaxFileSize: 500 * 1024, // 500 KB
	}
}

// LoadConfig loads configuration from global and local sources
func LoadConfig(workspacePath string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	// Load global config
	globalCfg, err := loadGlobalConfig()
	if err == nil {
		mergeCfg(cfg, globalCfg)
	}

	// Load local config (takes precedence)
	localCfg, err := loadLocalConfig(workspacePath)
	if err == nil {
		mergeCfg(cfg, localCfg)
	}

	return cfg, nil
}

// Get retrieves a configuration value by key
func (c *Config) Get(key string) (interface{}, error) {
	switch key {
	case "provider":
		return c.Provider, nil
	case "model":
		return c.Model, nil
	case "api_key":
		return c.APIKey, nil
	case "base_url":
		return c.BaseURL, nil
	case "max_tokens":
		return c.MaxTokens, nil
	case "temperature":
		return c.Temperature, nil
	case "max_file_size":
		return c.MaxFileSize, nil
	default:
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
}

// Set updates a configuration value by key
func (c *Config) Set(key string, value interface{}) error {
	// Convert value to string (CLI input is always string)
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string value for %s", key)
	}

	switch key {
	case "provider":
		c.Provider = str
		return nil
	case "model":
		c.Model = str
		return nil
	case "api_key":
		c.APIKey = str
		return nil
	case "base_url":
		c.BaseURL = str
		return nil
	case "max_tokens":
		val, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("expected numeric value for max_tokens, got: %s", str)
		}
		c.MaxTokens = val
		return nil
	case "temperature":
		val, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return fmt.Errorf("expected numeric value for temperature, got: %s", str)
		}
		c.Temperature = val
		return nil
	case "max_file_size":
		val, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return fmt.Errorf("expected numeric value for max_file_size, got: %s", str)
		}
		c.MaxFileSize = val
		return nil
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

// Keys returns the known configuration keys in display order
func Keys() []string {
	return []string{"provider", "model", "api_key", "base_url", "max_tokens", "temperature", "max_file_size"}
}

// loadGlobalConfig loads configuration from ~/.mend/config.json
func loadGlobalConfig() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(homeDir, ".mend", "config.json")
	return loadConfigFromFile(configPath)
}

// loadLocalConfig loads configuration from <workspace>/.mend/config.json
func loadLocalConfig(workspacePath string) (*Config, error) {
	configPath := filepath.Join(workspacePath, ".mend", "config.json")
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SaveLocalConfig saves configuration to <workspace>/.mend/config.json
func SaveLocalConfig(workspacePath string, cfg *Config) error {
	configDir := filepath.Join(workspacePath, ".mend")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "config.json"), data, 0644)
}

// mergeCfg merges source config into destination config
func mergeCfg(dst, src *Config) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.APIKey != "" {
		dst.APIKey = src.APIKey
	}
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.MaxTokens != 0 {
		dst.MaxTokens = src.MaxTokens
	}
	if src.Temperature != 0 {
		dst.Temperature = src.Temperature
	}
	if src.MaxFileSize != 0 {
		dst.MaxFileSize = src.MaxFileSize
	}
}
