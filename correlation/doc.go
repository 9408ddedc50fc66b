// Corelog - Application Logging and Correlation Toolkit
// Copyright 2026 The Corelog Authors
// SPDX-License-Identifier: MIT
// https://github.com/sedgwick-docs/corelog

/*
Package correlation resolves and propagates the correlation identifier for a
unit of work: the value shared by every log record and outbound call that
belongs to one logical request, enabling cross-service tracing.

A Resolver produces exactly one identifier per resolution, consulting sources
in a fixed precedence order (first match wins):

 1. A syntactically valid UUID in the inbound X-Correlation-Id header.
 2. An identifier previously stored in the client session.
 3. A freshly generated UUID, stored in the session for reuse by later
    requests from the same client.
 4. A fixed identifier from process configuration (worker processes).
 5. The all-zero UUID sentinel, meaning "no correlation available".

Resolution never fails: malformed input is silently skipped, not rejected.

Typical server wiring:

	resolver, err := correlation.NewResolver(cfg.Correlation.FixedID)
	if err != nil {
	    return err
	}
	r.Use(middleware.Correlation(resolver))

Handlers read the identifier from the request context and outbound calls
propagate it through the client transport:

	id := correlation.FromContext(r.Context())
	client := correlation.NewHTTPClient(resolver)
	resp, err := client.Do(outboundReq) // X-Correlation-Id set automatically

Log records pick the identifier up either through logging.Ctx(ctx) or through
the Hook installed on the global logger.
*/
package correlation
