// Corelog - Application Logging and Correlation Toolkit
// Copyright 2026 The Corelog Authors
// SPDX-License-Identifier: MIT
// https://github.com/sedgwick-docs/corelog

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault_Validates(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default configuration should validate: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.App.Name != "corelog" {
		t.Errorf("App.Name = %q, want corelog", cfg.App.Name)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("Session.TTL = %v, want 24h", cfg.Session.TTL)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("CORELOG_APP_NAME", "Billing API")
	t.Setenv("CORELOG_APP_ENVIRONMENT", "production")
	t.Setenv("CORELOG_LOGGING_LEVEL", "warn")
	t.Setenv("CORELOG_SESSION_COOKIE_NAME", "billing_session")
	t.Setenv("CORELOG_SERVER_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.App.Name != "Billing API" {
		t.Errorf("App.Name = %q, want Billing API", cfg.App.Name)
	}
	if cfg.App.Environment != "production" {
		t.Errorf("App.Environment = %q, want production", cfg.App.Environment)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Session.CookieName != "billing_session" {
		t.Errorf("Session.CookieName = %q, want billing_session", cfg.Session.CookieName)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corelog.yaml")
	content := `
app:
  name: File App
  environment: staging
logging:
  level: debug
correlation:
  fixed_id: 6ba7b810-9dad-11d1-80b4-00c04fd430c8
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.App.Name != "File App" {
		t.Errorf("App.Name = %q, want File App", cfg.App.Name)
	}
	if cfg.App.Environment != "staging" {
		t.Errorf("App.Environment = %q, want staging", cfg.App.Environment)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Correlation.FixedID != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Errorf("Correlation.FixedID = %q", cfg.Correlation.FixedID)
	}
	// Values the file does not set keep their defaults.
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corelog.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("CORELOG_LOGGING_LEVEL", "error")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error (env over file)", cfg.Logging.Level)
	}
}

func TestLoad_InvalidFixedIDRejected(t *testing.T) {
	t.Setenv("CORELOG_CORRELATION_FIXED_ID", "not-a-uuid")

	if _, err := Load(); err == nil {
		t.Error("expected a validation error for a malformed fixed ID")
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.App.Name = ""
	cfg.Logging.Level = "loud"
	cfg.Server.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := err.Error()
	for _, want := range []string{"Name", "Level", "Port"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing problem for %s", msg, want)
		}
	}
}

func TestValidate_BadgerStoreRequiresPath(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Session.Store = "badger"
	cfg.Session.Path = ""

	if err := cfg.Validate(); err == nil {
		t.Error("badger store without a path should fail validation")
	}

	// A disabled session layer does not need a store path.
	cfg.Session.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled sessions should not require a path: %v", err)
	}

	cfg.Session.Enabled = true
	cfg.Session.Path = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Errorf("badger store with a path should validate: %v", err)
	}
}

func TestValidate_CompressRequiresDirectory(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Logging.Compress = true
	cfg.Logging.Directory = ""

	if err := cfg.Validate(); err == nil {
		t.Error("compress without a directory should fail validation")
	}
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"CORELOG_APP_NAME", "app.name"},
		{"CORELOG_APP_ENVIRONMENT", "app.environment"},
		{"CORELOG_LOGGING_MAX_SIZE_MB", "logging.max_size_mb"},
		{"CORELOG_SESSION_COOKIE_NAME", "session.cookie_name"},
		{"CORELOG_CORRELATION_FIXED_ID", "correlation.fixed_id"},
		{"CORELOG_SERVER_PORT", "server.port"},
	}
	for _, tt := range tests {
		if got := envTransform(tt.in); got != tt.want {
			t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
