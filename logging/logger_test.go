// Corelog - Application Logging and Correlation Toolkit
// Copyright 2026 The Corelog Authors
// SPDX-License-Identifier: MIT
// https://github.com/sedgwick-docs/corelog

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	closeLogs, err := Init(Config{
		AppName:     "Billing API",
		Environment: "production",
		Level:       "debug",
		Format:      "json",
		Output:      &buf,
	})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer closeLogs()

	Info().Str("key", "value").Msg("hello")

	out := buf.String()
	for _, want := range []string{
		`"app":"Billing API"`,
		`"environment":"production"`,
		`"key":"value"`,
		`"message":"hello"`,
		`"level":"info"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestInit_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	closeLogs, err := Init(Config{Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer closeLogs()

	Info().Msg("filtered")
	Warn().Msg("passes")

	out := buf.String()
	if strings.Contains(out, "filtered") {
		t.Errorf("info record emitted below warn level: %s", out)
	}
	if !strings.Contains(out, "passes") {
		t.Errorf("warn record missing: %s", out)
	}
}

func TestInit_FileSinks(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer

	closeLogs, err := Init(Config{
		AppName:   "Billing API",
		Level:     "debug",
		Output:    &buf,
		Directory: dir,
		ErrorFile: true,
	})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Info().Msg("routine traffic")
	Error().Msg("something broke")

	if err := closeLogs(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	appLog := readFile(t, filepath.Join(dir, "billing_api.log"))
	if !strings.Contains(appLog, "routine traffic") || !strings.Contains(appLog, "something broke") {
		t.Errorf("app log missing records: %s", appLog)
	}

	errLog := readFile(t, filepath.Join(dir, "billing_api.error.log"))
	if strings.Contains(errLog, "routine traffic") {
		t.Errorf("error log contains routine traffic: %s", errLog)
	}
	if !strings.Contains(errLog, "something broke") {
		t.Errorf("error log missing error record: %s", errLog)
	}

	// Console sink receives everything regardless of file sinks.
	if !strings.Contains(buf.String(), "routine traffic") {
		t.Errorf("console sink missing record: %s", buf.String())
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestLevelFilterWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := &levelFilterWriter{w: &buf, min: zerolog.ErrorLevel}

	n, err := w.WriteLevel(zerolog.InfoLevel, []byte("info line"))
	if err != nil || n != len("info line") {
		t.Errorf("filtered write = (%d, %v), want full length and nil error", n, err)
	}
	if buf.Len() != 0 {
		t.Errorf("info record leaked through the error filter: %s", buf.String())
	}

	if _, err := w.WriteLevel(zerolog.ErrorLevel, []byte("error line")); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "error line" {
		t.Errorf("error record not written: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"disabled", zerolog.Disabled},
		{"INFO", zerolog.InfoLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFileBase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"", "app"},
		{"Billing API", "billing_api"},
		{"corelog", "corelog"},
		{"  Spaced  ", "spaced"},
	}

	for _, tt := range tests {
		if got := fileBase(tt.input); got != tt.want {
			t.Errorf("fileBase(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
