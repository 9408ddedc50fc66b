// Corelog - Application Logging and Correlation Toolkit
// Copyright 2026 The Corelog Authors
// SPDX-License-Identifier: MIT
// https://github.com/sedgwick-docs/corelog

package correlation

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// HeaderName is the HTTP header carrying the correlation identifier,
	// on both inbound and outbound requests. Header lookups are
	// case-insensitive per net/http canonicalization.
	HeaderName = "X-Correlation-Id"

	// SessionKey is the session store key holding the identifier
	// resolved for a client session.
	SessionKey = "correlation_id"

	// FieldName is the structured log field carrying the identifier.
	FieldName = "correlation_id"
)

// Nil is the all-zero UUID sentinel meaning "no correlation available".
// It is a valid, well-formed identifier and is rendered as
// 00000000-0000-0000-0000-000000000000 in logs and headers.
var Nil = uuid.Nil

// Context keys for correlation.
type contextKey string

// idKey is the context key for the resolved correlation identifier.
const idKey contextKey = "correlation_id"

// WithID returns a new context carrying the given correlation identifier.
// Storing Nil is meaningful: it records that resolution ran and produced
// the sentinel, so logs and outbound headers carry the sentinel rather
// than nothing.
func WithID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, idKey, id)
}

// FromContext retrieves the correlation identifier from context.
// Returns Nil if resolution has not run for this context.
func FromContext(ctx context.Context) uuid.UUID {
	id, _ := IDFromContext(ctx)
	return id
}

// IDFromContext distinguishes "resolved to the sentinel" from "never
// resolved": ok is true only when an identifier was explicitly stored.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}
	id, ok := ctx.Value(idKey).(uuid.UUID)
	return id, ok
}

// Hook is a zerolog hook that attaches the resolved correlation identifier
// to every emitted log record whose event context carries one. Install it
// once on the base logger; events created with .Ctx(ctx) are enriched
// automatically.
//
//	logger = logger.Hook(correlation.Hook{})
//	logger.Info().Ctx(ctx).Msg("processed")
type Hook struct{}

// Run implements zerolog.Hook.
func (Hook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	if id, ok := IDFromContext(e.GetCtx()); ok {
		e.Str(FieldName, id.String())
	}
}

// Enrich attaches the identifier to a single log event. Use this when the
// event is built outside a context-aware logger.
//
//	correlation.Enrich(logger.Info(), id).Msg("job started")
func Enrich(e *zerolog.Event, id uuid.UUID) *zerolog.Event {
	return e.Str(FieldName, id.String())
}
