// Corelog - Application Logging and Correlation Toolkit
// Copyright 2026 The Corelog Authors
// SPDX-License-Identifier: MIT
// https://github.com/sedgwick-docs/corelog

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/sedgwick-docs/corelog/correlation"
	"github.com/sedgwick-docs/corelog/session"
)

func newResolver(t *testing.T, fixedID string) *correlation.Resolver {
	t.Helper()
	r, err := correlation.NewResolver(fixedID)
	if err != nil {
		t.Fatalf("NewResolver(%q) failed: %v", fixedID, err)
	}
	return r
}

func TestCorrelation_HeaderPassthrough(t *testing.T) {
	t.Parallel()

	want := uuid.New()

	var got uuid.UUID
	var present bool
	handler := Correlation(newResolver(t, ""))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, present = correlation.IDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(correlation.HeaderName, want.String())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !present {
		t.Fatal("expected a correlation ID in the request context")
	}
	if got != want {
		t.Errorf("context ID = %s, want %s", got, want)
	}
	if echo := rec.Header().Get(correlation.HeaderName); echo != want.String() {
		t.Errorf("response header = %q, want %q", echo, want)
	}
}

func TestCorrelation_SessionIntegration(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	cfg := session.DefaultMiddlewareConfig()
	resolver := newResolver(t, "")

	var ids []uuid.UUID
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := correlation.IDFromContext(r.Context())
		if !ok {
			t.Error("expected a resolved correlation ID")
		}
		ids = append(ids, id)
		w.WriteHeader(http.StatusOK)
	})
	handler := session.Middleware(store, cfg)(Correlation(resolver)(inner))

	// First contact: the middleware generates an ID and stores it in the
	// session.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == cfg.CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected a session cookie")
	}

	// Returning client without a header gets the same ID back.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if len(ids) != 2 {
		t.Fatalf("handler ran %d times, want 2", len(ids))
	}
	if ids[0] == uuid.Nil {
		t.Error("session-generated ID should not be the sentinel")
	}
	if ids[0] != ids[1] {
		t.Errorf("correlation ID not stable across requests: %s vs %s", ids[0], ids[1])
	}
}

func TestCorrelation_FixedIDWithoutSession(t *testing.T) {
	t.Parallel()

	fixed := uuid.New()
	handler := Correlation(newResolver(t, fixed.String()))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if echo := rec.Header().Get(correlation.HeaderName); echo != fixed.String() {
		t.Errorf("response header = %q, want fixed ID %q", echo, fixed)
	}
}

func TestCorrelation_SentinelWhenUnresolvable(t *testing.T) {
	t.Parallel()

	var got uuid.UUID
	var present bool
	handler := Correlation(newResolver(t, ""))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, present = correlation.IDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !present {
		t.Fatal("resolution should always store an ID, even the sentinel")
	}
	if got != uuid.Nil {
		t.Errorf("context ID = %s, want sentinel", got)
	}
	if echo := rec.Header().Get(correlation.HeaderName); echo != uuid.Nil.String() {
		t.Errorf("response header = %q, want sentinel", echo)
	}
}

func TestCorrelation_MalformedHeaderIgnored(t *testing.T) {
	t.Parallel()

	fixed := uuid.New()
	handler := Correlation(newResolver(t, fixed.String()))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(correlation.HeaderName, "not-a-uuid")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if echo := rec.Header().Get(correlation.HeaderName); echo != fixed.String() {
		t.Errorf("response header = %q, want fixed ID %q after malformed header", echo, fixed)
	}
}
