// Corelog - Application Logging and Correlation Toolkit
// Copyright 2026 The Corelog Authors
// SPDX-License-Identifier: MIT
// https://github.com/sedgwick-docs/corelog

// Package config loads the process-wide corelog configuration.
//
// Configuration is resolved once at startup and read-only for the process
// lifetime. Sources are layered with Koanf v2, highest priority last:
//
//  1. Built-in defaults
//  2. Optional YAML config file (corelog.yaml, /etc/corelog/corelog.yaml,
//     or the CONFIG_PATH environment variable)
//  3. Environment variables with the CORELOG_ prefix
//     (CORELOG_APP_NAME -> app.name, CORELOG_LOGGING_LEVEL -> logging.level)
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"corelog.yaml",
	"corelog.yml",
	"/etc/corelog/corelog.yaml",
	"/etc/corelog/corelog.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix namespaces corelog environment variables.
const envPrefix = "CORELOG_"

// Config is the process-wide configuration: resolved once at startup,
// never mutated thereafter.
type Config struct {
	App         AppConfig         `koanf:"app"`
	Logging     LoggingConfig     `koanf:"logging"`
	Correlation CorrelationConfig `koanf:"correlation"`
	Session     SessionConfig     `koanf:"session"`
	Server      ServerConfig      `koanf:"server"`
}

// AppConfig identifies the application in log records.
type AppConfig struct {
	// Name is the application display name stamped on every log record.
	Name string `koanf:"name" validate:"required"`

	// Environment is development, staging or production.
	Environment string `koanf:"environment" validate:"oneof=development staging production"`
}

// LoggingConfig controls the logging sinks.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`

	// Directory enables rolling file sinks when set.
	Directory  string `koanf:"directory"`
	MaxSizeMB  int    `koanf:"max_size_mb" validate:"min=1"`
	MaxBackups int    `koanf:"max_backups" validate:"min=0"`
	MaxAgeDays int    `koanf:"max_age_days" validate:"min=1"`
	Compress   bool   `koanf:"compress"`
	ErrorFile  bool   `koanf:"error_file"`
}

// CorrelationConfig configures identifier resolution.
type CorrelationConfig struct {
	// FixedID is the optional fixed correlation identifier for
	// non-request workloads (batch and worker processes). Must be a
	// valid UUID when set.
	FixedID string `koanf:"fixed_id" validate:"omitempty,uuid"`
}

// SessionConfig configures the per-client session store.
type SessionConfig struct {
	Enabled      bool          `koanf:"enabled"`
	CookieName   string        `koanf:"cookie_name" validate:"required"`
	TTL          time.Duration `koanf:"ttl" validate:"min=1m"`
	Sliding      bool          `koanf:"sliding"`
	CookieSecure bool          `koanf:"cookie_secure"`

	// Store is memory or badger.
	Store string `koanf:"store" validate:"oneof=memory badger"`

	// Path is the BadgerDB directory, required for the badger store.
	Path string `koanf:"path"`
}

// ServerConfig configures the bundled demo server.
type ServerConfig struct {
	Host    string        `koanf:"host" validate:"required"`
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`

	// RequestLogging controls automatic per-request logging.
	RequestLogging bool `koanf:"request_logging"`

	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"min=1s"`
}

// Default returns a Config with all default values. Defaults are applied
// first, then overridden by the config file and environment variables.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:        "corelog",
			Environment: "development",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			Caller:     false,
			Directory:  "",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   false,
			ErrorFile:  true,
		},
		Correlation: CorrelationConfig{
			FixedID: "",
		},
		Session: SessionConfig{
			Enabled:      true,
			CookieName:   "corelog_session",
			TTL:          24 * time.Hour,
			Sliding:      true,
			CookieSecure: true,
			Store:        "memory",
			Path:         "",
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			RequestLogging:  true,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
	}
}

// Load resolves configuration using Koanf v2 with layered sources
// (highest priority last): defaults, optional YAML file, environment
// variables. The result is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// Layer 2: optional config file
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	envProvider := env.Provider(envPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the path of the first config file found, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransform maps environment variable names to koanf config paths:
// CORELOG_APP_NAME -> app.name, CORELOG_SESSION_COOKIE_NAME ->
// session.cookie_name. The first underscore separates the section; the
// remainder is the key within it.
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return section
	}
	return section + "." + rest
}
