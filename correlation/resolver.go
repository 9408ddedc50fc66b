// Corelog - Application Logging and Correlation Toolkit
// Copyright 2026 The Corelog Authors
// SPDX-License-Identifier: MIT
// https://github.com/sedgwick-docs/corelog

package correlation

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// SessionValues is read/write access to the per-client-session key/value
// store provided by the request pipeline. Implementations must be safe for
// concurrent use by requests sharing a session.
type SessionValues interface {
	// Value returns the stored value for key and whether it was present.
	Value(key string) (string, bool)

	// SetValue stores value under key.
	SetValue(key, value string)
}

// RequestContext is the execution context a resolution reads from. It is an
// explicit parameter rather than ambient framework state so the data
// dependency stays visible and testable without a running server.
type RequestContext interface {
	// HeaderValue returns the inbound request header value, or "" when
	// the header is absent or the work is not request-driven.
	HeaderValue(name string) string

	// Session returns the session store for the current client, or nil
	// when session support is disabled.
	Session() SessionValues
}

// httpContext adapts an inbound HTTP request (and optionally its session)
// to RequestContext.
type httpContext struct {
	r    *http.Request
	sess SessionValues
}

// HTTPContext wraps an inbound request as a RequestContext. Pass nil sess
// when session support is disabled.
func HTTPContext(r *http.Request, sess SessionValues) RequestContext {
	return &httpContext{r: r, sess: sess}
}

func (c *httpContext) HeaderValue(name string) string {
	if c.r == nil {
		return ""
	}
	return c.r.Header.Get(name)
}

func (c *httpContext) Session() SessionValues { return c.sess }

// backgroundContext is the RequestContext of non-request work: no headers,
// no session.
type backgroundContext struct{}

func (backgroundContext) HeaderValue(string) string { return "" }
func (backgroundContext) Session() SessionValues    { return nil }

// Background returns the RequestContext used by worker and batch processes:
// resolution falls through to the configured fixed identifier, or the
// sentinel.
func Background() RequestContext { return backgroundContext{} }

// Resolver determines the effective correlation identifier for a unit of
// work. It is immutable after construction and safe for concurrent use.
type Resolver struct {
	fixed uuid.UUID
}

// NewResolver creates a Resolver. fixedID is the optional process-wide
// identifier from configuration, used when neither header nor session
// yields a value; empty means none. A malformed non-empty fixedID is a
// startup error — it is the one place a bad identifier is rejected rather
// than skipped.
func NewResolver(fixedID string) (*Resolver, error) {
	if fixedID == "" {
		return &Resolver{fixed: uuid.Nil}, nil
	}
	id, err := uuid.Parse(fixedID)
	if err != nil {
		return nil, fmt.Errorf("parse fixed correlation id %q: %w", fixedID, err)
	}
	return &Resolver{fixed: id}, nil
}

// FixedID returns the configured fixed identifier, or Nil when none is set.
func (r *Resolver) FixedID() uuid.UUID { return r.fixed }

// Resolve produces the correlation identifier for the given execution
// context. First match wins:
//
//  1. valid UUID in the X-Correlation-Id inbound header
//  2. valid identifier already stored in the session
//  3. newly generated UUID, stored in the session for later requests
//  4. fixed identifier from configuration
//  5. the all-zero sentinel
//
// Resolve never fails: malformed values are treated as absent and the
// chain falls through. The only side effect is the session write in step 3,
// performed at most once per session lifetime; a concurrent duplicate write
// is benign since later readers converge on whatever value is stored.
func (r *Resolver) Resolve(rc RequestContext) uuid.UUID {
	if rc == nil {
		rc = Background()
	}

	if raw := rc.HeaderValue(HeaderName); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			return id
		}
		// Malformed header: silently skip, don't reject.
	}

	if sess := rc.Session(); sess != nil {
		if raw, ok := sess.Value(SessionKey); ok {
			if id, err := uuid.Parse(raw); err == nil {
				return id
			}
		}
		id := uuid.New()
		sess.SetValue(SessionKey, id.String())
		return id
	}

	if r.fixed != uuid.Nil {
		return r.fixed
	}

	return uuid.Nil
}
