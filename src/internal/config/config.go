// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the environment variable pointing at the
// configuration file when no path is given explicitly.
const EnvConfigFile = "CERT_INSPECTOR_CONFIG_FILE"

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config holds the optional file-based defaults for certificate inspection.
// Flags always override file values, which override the hardcoded defaults.
// Supported file extensions: .json, .yaml, .yml
type Config struct {
	// Defaults: Default settings for inspection runs
	Defaults struct {
		// ExpireDays: Renewal warning threshold in days
		ExpireDays int `json:"expireDays" yaml:"expireDays"`
		// Timeout: Per-domain dial timeout in seconds
		Timeout int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
		// Port: TLS port to connect to
		Port int `json:"port" yaml:"port"`
	} `json:"defaults" yaml:"defaults"`
}

// detectFormat determines the configuration file format based on file extension.
// It uses case-insensitive extension matching for cross-platform compatibility.
func detectFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshal parses configuration data based on the detected format.
func unmarshal(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("config: failed to parse YAML file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("config: failed to parse JSON file: %w", err)
		}
	}
	return nil
}

// Load reads the configuration file at configPath, falling back to the
// EnvConfigFile environment variable and then to hardcoded defaults.
//
// Configuration Priority:
//  1. Default values are set
//  2. EnvConfigFile is checked if configPath is empty
//  3. Config file values override defaults (if file exists and is valid)
func Load(configPath string) (*Config, error) {
	config := &Config{}

	// Set defaults
	config.Defaults.ExpireDays = 30
	config.Defaults.Timeout = 10
	config.Defaults.Port = 443

	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %q: %w", configPath, err)
	}

	if err := unmarshal(data, config, detectFormat(configPath)); err != nil {
		return nil, err
	}

	return config, nil
}
