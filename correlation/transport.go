// Corelog - Application Logging and Correlation Toolkit
// Copyright 2026 The Corelog Authors
// SPDX-License-Identifier: MIT
// https://github.com/sedgwick-docs/corelog

package correlation

import (
	"net/http"
)

// Transport is an http.RoundTripper that sets the X-Correlation-Id header
// on every outbound request, overwriting any prior value. The identifier
// comes from the request context when resolution already ran (server
// handlers making downstream calls), otherwise from the resolver's fixed
// configuration or the sentinel (worker processes).
type Transport struct {
	base     http.RoundTripper
	resolver *Resolver
}

// NewTransport wraps base with correlation propagation. A nil base uses
// http.DefaultTransport.
func NewTransport(base http.RoundTripper, resolver *Resolver) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, resolver: resolver}
}

// RoundTrip implements http.RoundTripper. The incoming request is cloned
// before mutation, per the RoundTripper contract.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	id, ok := IDFromContext(req.Context())
	if !ok && t.resolver != nil {
		id = t.resolver.Resolve(Background())
	}

	out := req.Clone(req.Context())
	out.Header.Set(HeaderName, id.String())
	return t.base.RoundTrip(out)
}

// NewHTTPClient returns an http.Client whose transport propagates the
// correlation identifier on every call. Share one client per process the
// same way a plain http.Client would be shared.
func NewHTTPClient(resolver *Resolver) *http.Client {
	return &http.Client{Transport: NewTransport(nil, resolver)}
}
