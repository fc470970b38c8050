// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format     string `yaml:"format"`
		Verbose    bool   `yaml:"verbose"`
		Debug      bool   `yaml:"debug"`
		NoColor    bool   `yaml:"no_color"`
		MaxRecords int    `yaml:"max_records"`
	} `yaml:"defaults"`

	// Dictionary store configuration
	Dictionary struct {
		Path string `yaml:"path"`
		// Mode controls behavior when dictionaries are missing: "permissive"
		// accepts every name, "strict" rejects membership queries.
		Mode string `yaml:"mode"`
	} `yaml:"dictionary"`

	// Batch processing configuration
	Batch struct {
		Workers    int `yaml:"workers"`
		MaxRecords int `yaml:"max_records"`
	} `yaml:"batch"`

	// HTTP API server configuration
	Server struct {
		Port int    `yaml:"port"`
	} `yaml:"server"`

	// Address standardization service (external collaborator)
	Address struct {
		Enabled           bool    `yaml:"enabled"`
		BaseURL           string  `yaml:"base_url"`
		TokenURL          string  `yaml:"token_url"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		TimeoutSeconds    int     `yaml:"timeout_seconds"`
	} `yaml:"address"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	// Default configuration
	config := &Config{}

	config.Defaults.Format = "text"
	config.Defaults.Verbose = false
	config.Defaults.Debug = false
	config.Defaults.NoColor = false
	config.Defaults.MaxRecords = 1000

	config.Dictionary.Path = ""
	config.Dictionary.Mode = "permissive"

	config.Batch.Workers = 4
	config.Batch.MaxRecords = 1000

	config.Server.Port = 8080

	config.Address.Enabled = false
	config.Address.BaseURL = "https://apis.usps.com/addresses/v3"
	config.Address.TokenURL = "https://apis.usps.com/oauth2/v3/token"
	config.Address.RequestsPerSecond = 5
	config.Address.TimeoutSeconds = 10

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	// Read config file
	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Validate the configuration
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first - prioritize config.yaml
	if fileExists("config.yaml") {
		return "config.yaml"
	}
	if fileExists("namecheck.yaml") {
		return "namecheck.yaml"
	}
	if fileExists("namecheck.yml") {
		return "namecheck.yml"
	}

	// Check for .namecheck.yaml in current directory (project-specific config)
	if fileExists(".namecheck.yaml") {
		return ".namecheck.yaml"
	}
	if fileExists(".namecheck.yml") {
		return ".namecheck.yml"
	}

	// Check XDG config directory
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	xdgConfigFile := filepath.Join(xdgConfig, "namecheck", "config.yaml")
	if fileExists(xdgConfigFile) {
		return xdgConfigFile
	}
	xdgConfigFile = filepath.Join(xdgConfig, "namecheck", "config.yml")
	if fileExists(xdgConfigFile) {
		return xdgConfigFile
	}

	return ""
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if config.Dictionary.Mode != "" && config.Dictionary.Mode != "permissive" && config.Dictionary.Mode != "strict" {
		return fmt.Errorf("invalid dictionary mode %q: must be \"permissive\" or \"strict\"", config.Dictionary.Mode)
	}

	if config.Batch.Workers < 0 {
		return fmt.Errorf("batch workers cannot be negative: %d", config.Batch.Workers)
	}

	if config.Batch.MaxRecords < 0 {
		return fmt.Errorf("batch max_records cannot be negative: %d", config.Batch.MaxRecords)
	}

	if config.Address.RequestsPerSecond < 0 {
		return fmt.Errorf("address requests_per_second cannot be negative: %f", config.Address.RequestsPerSecond)
	}

	return nil
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard locations
// when configFile is empty). If loading fails, it returns a default configuration.
// This is the shared helper used by both the CLI and the API server.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		// Fall back to defaults when the config file is missing or unreadable.
		cfg, _ = LoadConfig("")
	}
	return cfg
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return info != nil && !info.IsDir()
}
