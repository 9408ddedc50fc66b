// Corelog - Application Logging and Correlation Toolkit
// Copyright 2026 The Corelog Authors
// SPDX-License-Identifier: MIT
// https://github.com/sedgwick-docs/corelog

/*
Package middleware provides the HTTP middleware components of corelog.

The typical stack, outermost first:

	r := chi.NewRouter()
	r.Use(session.Middleware(store, nil))        // client session
	r.Use(middleware.Correlation(resolver))      // correlation resolution
	r.Use(middleware.RequestLogger(logger))      // automatic request logging
	r.Use(middleware.Metrics)                    // Prometheus instrumentation

Correlation must run inside the session middleware so resolution can read
and write the session store; RequestLogger runs inside Correlation so the
access log carries the resolved identifier.
*/
package middleware
