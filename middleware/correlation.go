// Corelog - Application Logging and Correlation Toolkit
// Copyright 2026 The Corelog Authors
// SPDX-License-Identifier: MIT
// https://github.com/sedgwick-docs/corelog

package middleware

import (
	"net/http"

	"github.com/sedgwick-docs/corelog/correlation"
	"github.com/sedgwick-docs/corelog/session"
)

// Correlation resolves the correlation identifier once per request, stores
// it in the request context, and echoes it in the X-Correlation-Id response
// header for client visibility. Sessions are picked up from the request
// context when the session middleware runs outside this one; without a
// session, resolution falls through to the fixed configuration identifier
// or the sentinel.
func Correlation(resolver *correlation.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var values correlation.SessionValues
			if sess := session.FromContext(r.Context()); sess != nil {
				values = sess
			}

			id := resolver.Resolve(correlation.HTTPContext(r, values))

			w.Header().Set(correlation.HeaderName, id.String())

			ctx := correlation.WithID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
