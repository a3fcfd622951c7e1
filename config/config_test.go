package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Provider != "openai" {
		t.Errorf("Expected default provider 'openai', got '%s'", cfg.Provider)
	}

	if cfg.Model != "gpt-4o" {
		t.Errorf("Expected default model 'gpt-4o', got '%s'", cfg.Model)
	}

	if cfg.MaxTokens != 4096 {
		t.Errorf("Expected default MaxTokens 4096, got %d", cfg.MaxTokens)
	}

	expectedMaxFileSize := int64(500 * 1024)
	if cfg.MaxFileSize != expectedMaxFileSize {
		t.Errorf("Expected default MaxFileSize %d, got %d", expectedMaxFileSize, cfg.MaxFileSize)
	}

	if cfg.APIKey != "" {
		t.Error("Expected default APIKey to be empty")
	}

	if cfg.BaseURL != "" {
		t.Error("Expected default BaseURL to be empty")
	}
}

func TestConfigGet(t *testing.T) {
	cfg := &Config{
		Provider:    "anthropic",
		Model:       "test-model",
		APIKey:      "test-key",
		BaseURL:     "http://test.com",
		MaxTokens:   2048,
		Temperature: 0.7,
		MaxFileSize: 1024,
	}

	tests := []struct {
		key      string
		expected interface{}
	}{
		{"provider", "anthropic"},
		{"model", "test-model"},
		{"api_key", "test-key"},
		{"base_url", "http://test.com"},
		{"max_tokens", 2048},
		{"temperature", 0.7},
		{"max_file_size", int64(1024)},
	}

	for _, test := range tests {
		value, err := cfg.Get(test.key)
		if err != nil {
			t.Errorf("Unexpected error for key '%s': %v", test.key, err)
			continue
		}

		if value != test.expected {
			t.Errorf("For key '%s', expected %v, got %v", test.key, test.expected, value)
		}
	}

	// Test unknown key
	_, err := cfg.Get("unknown_key")
	if err == nil {
		t.Error("Expected error for unknown key")
	}
}

func TestConfigSet(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		key   string
		value string
	}{
		{"provider", "ollama"},
		{"model", "codellama"},
		{"api_key", "new-api-key"},
		{"base_url", "https://api.example.com"},
		{"max_tokens", "8192"},
		{"temperature", "0.5"},
		{"max_file_size", "1048576"},
	}

	for _, test := range tests {
		err := cfg.Set(test.key, test.value)
		if err != nil {
			t.Errorf("Unexpected error for key '%s': %v", test.key, err)
			continue
		}
	}

	if cfg.Provider != "ollama" {
		t.Errorf("Expected provider 'ollama', got '%s'", cfg.Provider)
	}
	if cfg.MaxTokens != 8192 {
		t.Errorf("Expected MaxTokens 8192, got %d", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.5 {
		t.Errorf("Expected Temperature 0.5, got %f", cfg.Temperature)
	}
	if cfg.MaxFileSize != int64(1048576) {
		t.Errorf("Expected MaxFileSize 1048576, got %d", cfg.MaxFileSize)
	}

	// Test invalid numeric value
	if err := cfg.Set("max_tokens", "not-a-number"); err == nil {
		t.Error("Expected error for non-numeric max_tokens")
	}

	// Test unknown key
	if err := cfg.Set("unknown_key", "value"); err == nil {
		t.Error("Expected error for unknown key")
	}
}

func TestLoadConfigLocalOverridesDefaults(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mend-config-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	local := DefaultConfig()
	local.Provider = "anthropic"
	local.Model = "claude-sonnet-4-20250514"
	local.APIKey = "local-key"
	if err := SaveLocalConfig(tempDir, local); err != nil {
		t.Fatalf("Failed to save local config: %v", err)
	}

	cfg, err := LoadConfig(tempDir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Provider != "anthropic" {
		t.Errorf("Expected provider 'anthropic', got '%s'", cfg.Provider)
	}
	if cfg.Model != "claude-sonnet-4-20250514" {
		t.Errorf("Expected local model, got '%s'", cfg.Model)
	}
	if cfg.APIKey != "local-key" {
		t.Errorf("Expected local API key, got '%s'", cfg.APIKey)
	}
	// Untouched keys keep their defaults
	if cfg.MaxTokens != 4096 {
		t.Errorf("Expected default MaxTokens to survive merge, got %d", cfg.MaxTokens)
	}
}

func TestSaveLocalConfigCreatesDir(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "mend-config-save")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	if err := SaveLocalConfig(tempDir, DefaultConfig()); err != nil {
		t.Fatalf("SaveLocalConfig failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tempDir, ".mend", "config.json")); err != nil {
		t.Errorf("Expected config file to exist: %v", err)
	}
}
