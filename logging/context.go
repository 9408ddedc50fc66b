// Corelog - Application Logging and Correlation Toolkit
// Copyright 2026 The Corelog Authors
// SPDX-License-Identifier: MIT
// https://github.com/sedgwick-docs/corelog

package logging

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sedgwick-docs/corelog/correlation"
)

// Ctx returns a logger with the resolved correlation identifier added as a
// field. This is the recommended way to log inside handlers and services.
//
//	logging.Ctx(ctx).Info().Msg("Processing request")
//	// {"level":"info","correlation_id":"550e8400-...","message":"Processing request"}
//
// When resolution has not run for the context, no field is added.
func Ctx(ctx context.Context) *zerolog.Logger {
	logger := Logger()
	if id, ok := correlation.IDFromContext(ctx); ok {
		logger = logger.With().Str(correlation.FieldName, id.String()).Logger()
	}
	return &logger
}

// CtxWith returns a logger context builder with the correlation field
// pre-populated. Use this when adding fields beyond the standard ones.
//
//	logger := logging.CtxWith(ctx).Str("user_id", uid).Logger()
func CtxWith(ctx context.Context) zerolog.Context {
	logCtx := With()
	if id, ok := correlation.IDFromContext(ctx); ok {
		logCtx = logCtx.Str(correlation.FieldName, id.String())
	}
	return logCtx
}

// CtxDebug starts a debug level message with the correlation field.
func CtxDebug(ctx context.Context) *zerolog.Event {
	return Ctx(ctx).Debug()
}

// CtxInfo starts an info level message with the correlation field.
func CtxInfo(ctx context.Context) *zerolog.Event {
	return Ctx(ctx).Info()
}

// CtxWarn starts a warn level message with the correlation field.
func CtxWarn(ctx context.Context) *zerolog.Event {
	return Ctx(ctx).Warn()
}

// CtxError starts an error level message with the correlation field.
func CtxError(ctx context.Context) *zerolog.Event {
	return Ctx(ctx).Error()
}

// CtxErr starts an error level message with the correlation field and the
// error attached.
func CtxErr(ctx context.Context, err error) *zerolog.Event {
	return Ctx(ctx).Err(err)
}
