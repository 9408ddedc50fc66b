// Corelog - Application Logging and Correlation Toolkit
// Copyright 2026 The Corelog Authors
// SPDX-License-Identifier: MIT
// https://github.com/sedgwick-docs/corelog

package logging

import (
	"strings"
)

// Masking helpers for sensitive data. Callers mask values before handing
// them to a log event; pattern matching inside serialized output stays the
// responsibility of the downstream sink.

// MaskToken masks a token, showing only first and last 4 characters.
// Example: "eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9..." -> "eyJh...kpXV"
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// MaskSessionID masks a session ID.
// Example: "abc123def456" -> "abc1...f456"
func MaskSessionID(sessionID string) string {
	return MaskToken(sessionID)
}

// MaskUserID masks a user ID for privacy.
// Example: "user-12345678" -> "user...5678"
func MaskUserID(userID string) string {
	if userID == "" {
		return ""
	}
	if len(userID) <= 8 {
		return "***"
	}
	return userID[:4] + "..." + userID[len(userID)-4:]
}

// MaskEmail masks an email address.
// Example: "john.doe@example.com" -> "jo***@example.com"
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}

	atIndex := strings.Index(email, "@")
	if atIndex <= 0 {
		return "***"
	}

	localPart := email[:atIndex]
	domain := email[atIndex:]

	if len(localPart) <= 2 {
		return "***" + domain
	}
	return localPart[:2] + "***" + domain
}

// sensitiveKeys are field names whose values are always masked.
var sensitiveKeys = map[string]bool{
	"access_token":  true,
	"refresh_token": true,
	"id_token":      true,
	"token":         true,
	"password":      true,
	"secret":        true,
	"api_key":       true,
	"apikey":        true,
	"authorization": true,
	"bearer":        true,
	"cookie":        true,
	"session":       true,
	"session_id":    true,
	"sessionid":     true,
	"ssn":           true,
	"card_number":   true,
}

// MaskValue masks a value based on its key name. Values under sensitive
// keys are token-masked; email-shaped values are email-masked; everything
// else passes through unchanged.
func MaskValue(key, value string) string {
	if sensitiveKeys[strings.ToLower(key)] {
		return MaskToken(value)
	}
	if strings.Contains(value, "@") && strings.Contains(value, ".") {
		return MaskEmail(value)
	}
	return value
}

// sensitiveMarkers flag error strings that may embed credentials.
var sensitiveMarkers = []string{
	"password",
	"secret",
	"token",
	"key",
	"bearer",
	"authorization",
	"cookie",
}

// MaskError removes potentially sensitive information from error messages.
// Errors mentioning credential material are replaced wholesale; others are
// truncated.
func MaskError(msg string) string {
	lower := strings.ToLower(msg)
	for _, marker := range sensitiveMarkers {
		if strings.Contains(lower, marker) {
			return "sensitive error redacted"
		}
	}
	return truncate(msg, 200)
}

// truncate shortens a string to a maximum length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
