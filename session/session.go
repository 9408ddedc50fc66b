// Corelog - Application Logging and Correlation Toolkit
// Copyright 2026 The Corelog Authors
// SPDX-License-Identifier: MIT
// https://github.com/sedgwick-docs/corelog

// Package session provides anonymous per-client sessions used as the
// request-pipeline key/value store that carries correlation identifiers
// (and other small string values) across requests from the same client.
//
// A Store persists sessions between requests; MemoryStore suits
// development and tests, BadgerStore persists across restarts. Middleware
// ties a store to the HTTP pipeline through a session cookie.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

// Session-related errors
var (
	// ErrNotFound is returned when a session is not in the store.
	ErrNotFound = errors.New("session not found")

	// ErrExpired is returned when a session exists but has expired.
	ErrExpired = errors.New("session expired")
)

// Session is one client's session: an identifier plus a small guarded
// key/value map. It implements correlation.SessionValues. Safe for
// concurrent use by requests sharing the session.
type Session struct {
	// ID is the unique session identifier (opaque token).
	ID string

	// CreatedAt is when the session was created.
	CreatedAt time.Time

	// ExpiresAt is when the session expires.
	ExpiresAt time.Time

	// LastAccessedAt is when the session was last accessed.
	LastAccessedAt time.Time

	mu     sync.Mutex
	values map[string]string
	dirty  bool
}

// New creates a session with a fresh identifier and the given lifetime.
func New(ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:             generateID(),
		CreatedAt:      now,
		ExpiresAt:      now.Add(ttl),
		LastAccessedAt: now,
		values:         make(map[string]string),
	}
}

// Value returns the stored value for key and whether it was present.
func (s *Session) Value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// SetValue stores value under key and marks the session dirty so the
// middleware persists it after the request.
func (s *Session) SetValue(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	s.dirty = true
}

// Dirty reports whether the session has unpersisted changes.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// clone returns a deep copy with a clean dirty flag. Stores copy sessions
// in and out so callers cannot mutate stored state directly.
func (s *Session) clone() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := make(map[string]string, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}
	return &Session{
		ID:             s.ID,
		CreatedAt:      s.CreatedAt,
		ExpiresAt:      s.ExpiresAt,
		LastAccessedAt: s.LastAccessedAt,
		values:         values,
	}
}

// snapshotValues returns a copy of the value map for serialization.
func (s *Session) snapshotValues() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := make(map[string]string, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}
	return values
}

// generateID generates a cryptographically secure session ID.
func generateID() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to a less secure but still random ID
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(bytes)
}

// Store defines the interface for session storage backends.
type Store interface {
	// Create stores a new session.
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by ID.
	// Returns ErrNotFound if not found.
	// Returns ErrExpired if the session exists but is expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Update updates an existing session.
	// Returns ErrNotFound if not found.
	Update(ctx context.Context, session *Session) error

	// Delete removes a session by ID.
	// Does not return an error if the session doesn't exist.
	Delete(ctx context.Context, id string) error

	// Touch updates the session's last accessed time and extends expiry.
	Touch(ctx context.Context, id string, newExpiry time.Time) error

	// CleanupExpired removes all expired sessions.
	// Returns the count of deleted sessions.
	CleanupExpired(ctx context.Context) (int, error)
}
