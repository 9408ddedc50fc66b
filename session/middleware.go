// Corelog - Application Logging and Correlation Toolkit
// Copyright 2026 The Corelog Authors
// SPDX-License-Identifier: MIT
// https://github.com/sedgwick-docs/corelog

package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sedgwick-docs/corelog/logging"
)

// MiddlewareConfig holds configuration for the session middleware.
type MiddlewareConfig struct {
	// CookieName is the name of the session cookie.
	CookieName string

	// TTL is the session time-to-live.
	TTL time.Duration

	// Sliding enables session expiry extension on each request.
	Sliding bool

	// CookiePath is the path for the session cookie.
	CookiePath string

	// CookieSecure sets the Secure flag on the cookie.
	CookieSecure bool

	// CookieHTTPOnly sets the HttpOnly flag on the cookie.
	CookieHTTPOnly bool

	// CookieSameSite sets the SameSite attribute.
	CookieSameSite http.SameSite
}

// DefaultMiddlewareConfig returns sensible defaults.
func DefaultMiddlewareConfig() *MiddlewareConfig {
	return &MiddlewareConfig{
		CookieName:     "corelog_session",
		TTL:            24 * time.Hour,
		Sliding:        true,
		CookiePath:     "/",
		CookieSecure:   true,
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	}
}

type sessionContextKey struct{}

// FromContext retrieves the session injected by Middleware.
// Returns nil when session support is disabled or the store failed.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

// Middleware loads the client session from the request cookie, creating one
// on first contact, and injects it into the request context. Mutated
// sessions are persisted after the handler returns. Store failures never
// fail the request; it proceeds without a session.
func Middleware(store Store, cfg *MiddlewareConfig) func(http.Handler) http.Handler {
	if cfg == nil {
		cfg = DefaultMiddlewareConfig()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := loadOrCreate(store, cfg, w, r)
			if sess == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))

			if sess.Dirty() {
				if err := store.Update(r.Context(), sess); err != nil {
					logging.Error().Err(err).
						Str("session_id", sess.ID).
						Msg("Persist session")
				}
			}
			if cfg.Sliding {
				if err := store.Touch(r.Context(), sess.ID, time.Now().Add(cfg.TTL)); err != nil &&
					!errors.Is(err, ErrNotFound) {
					logging.Error().Err(err).
						Str("session_id", sess.ID).
						Msg("Extend session expiry")
				}
			}
		})
	}
}

// loadOrCreate resolves the session for the request, issuing a cookie for
// new sessions. Returns nil if the store cannot create a session.
func loadOrCreate(store Store, cfg *MiddlewareConfig, w http.ResponseWriter, r *http.Request) *Session {
	if cookie, err := r.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
		sess, err := store.Get(r.Context(), cookie.Value)
		if err == nil {
			return sess
		}
		// Not found or expired: fall through and start a fresh session.
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrExpired) {
			logging.Error().Err(err).Msg("Session lookup")
		}
	}

	sess := New(cfg.TTL)
	if err := store.Create(r.Context(), sess); err != nil {
		logging.Error().Err(err).Msg("Create session")
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    sess.ID,
		Path:     cfg.CookiePath,
		Expires:  sess.ExpiresAt,
		Secure:   cfg.CookieSecure,
		HttpOnly: cfg.CookieHTTPOnly,
		SameSite: cfg.CookieSameSite,
	})
	return sess
}
