// Corelog - Application Logging and Correlation Toolkit
// Copyright 2026 The Corelog Authors
// SPDX-License-Identifier: MIT
// https://github.com/sedgwick-docs/corelog

// Package main runs the corelog demo server: a small web service wired with
// the full corelog stack (config, logging sinks, sessions, correlation
// middleware, request logging, Prometheus metrics) that demonstrates
// correlation propagation end to end.
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority last): built-in defaults, corelog.yaml, CORELOG_* environment
// variables. See the config package for the full surface.
//
// Endpoints:
//
//	GET /healthz             liveness probe
//	GET /api/v1/correlation  returns the resolved correlation identifier
//	GET /api/v1/relay?url=   proxies a GET downstream, propagating the identifier
//	GET /metrics             Prometheus metrics
//
// The server shuts down gracefully on SIGINT and SIGTERM; the logging file
// sinks are flushed and closed last.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sedgwick-docs/corelog/config"
	"github.com/sedgwick-docs/corelog/correlation"
	"github.com/sedgwick-docs/corelog/logging"
	"github.com/sedgwick-docs/corelog/middleware"
	"github.com/sedgwick-docs/corelog/session"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	closeLogs, err := logging.Init(logging.Config{
		AppName:     cfg.App.Name,
		Environment: cfg.App.Environment,
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Caller:      cfg.Logging.Caller,
		Timestamp:   true,
		Directory:   cfg.Logging.Directory,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
		MaxAgeDays:  cfg.Logging.MaxAgeDays,
		Compress:    cfg.Logging.Compress,
		ErrorFile:   cfg.Logging.ErrorFile,
	})
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer func() {
		if err := closeLogs(); err != nil {
			fmt.Fprintf(os.Stderr, "close log sinks: %v\n", err)
		}
	}()

	logging.Info().
		Str("environment", cfg.App.Environment).
		Str("level", cfg.Logging.Level).
		Msg("Logging initialized")

	resolver, err := correlation.NewResolver(cfg.Correlation.FixedID)
	if err != nil {
		return fmt.Errorf("create correlation resolver: %w", err)
	}

	var store session.Store
	closeStore := func() error { return nil }
	if cfg.Session.Enabled {
		store, closeStore, err = session.NewStore(session.StoreConfig{
			Backend: cfg.Session.Store,
			Path:    cfg.Session.Path,
		})
		if err != nil {
			return fmt.Errorf("create session store: %w", err)
		}
		logging.Info().Str("backend", cfg.Session.Store).Msg("Session store ready")
	}
	defer func() {
		if err := closeStore(); err != nil {
			logging.Error().Err(err).Msg("Close session store")
		}
	}()

	router := newRouter(cfg, resolver, store)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Serve until a shutdown signal arrives.
	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logging.Info().Msg("Server stopped")
	return nil
}

// newRouter builds the demo routing table with the corelog middleware stack.
func newRouter(cfg *config.Config, resolver *correlation.Resolver, store session.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", correlation.HeaderName},
	}))
	r.Use(httprate.LimitByIP(cfg.Server.RateLimitReqs, cfg.Server.RateLimitWindow))

	if store != nil {
		r.Use(session.Middleware(store, &session.MiddlewareConfig{
			CookieName:     cfg.Session.CookieName,
			TTL:            cfg.Session.TTL,
			Sliding:        cfg.Session.Sliding,
			CookiePath:     "/",
			CookieSecure:   cfg.Session.CookieSecure,
			CookieHTTPOnly: true,
			CookieSameSite: http.SameSiteLaxMode,
		}))
	}
	r.Use(middleware.Correlation(resolver))
	if cfg.Server.RequestLogging {
		r.Use(middleware.RequestLogger(logging.WithComponent("http")))
	}
	r.Use(middleware.Metrics)

	client := correlation.NewHTTPClient(resolver)

	r.Get("/healthz", handleHealth)
	r.Get("/api/v1/correlation", handleCorrelation)
	r.Get("/api/v1/relay", handleRelay(client))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCorrelation returns the identifier resolved for this request.
func handleCorrelation(w http.ResponseWriter, r *http.Request) {
	id := correlation.FromContext(r.Context())
	logging.Ctx(r.Context()).Debug().Msg("Correlation lookup")
	respondJSON(w, http.StatusOK, map[string]string{"correlation_id": id.String()})
}

// handleRelay performs an outbound GET through the propagating client and
// reports the downstream status, demonstrating header propagation.
func handleRelay(client *http.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target := r.URL.Query().Get("url")
		if _, err := url.ParseRequestURI(target); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid url parameter"})
			return
		}

		req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target, nil)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "build downstream request failed"})
			return
		}

		resp, err := client.Do(req)
		if err != nil {
			logging.CtxErr(r.Context(), err).Str("target", target).Msg("Relay request failed")
			respondJSON(w, http.StatusBadGateway, map[string]string{"error": "downstream request failed"})
			return
		}
		defer resp.Body.Close()

		respondJSON(w, http.StatusOK, map[string]any{
			"target": target,
			"status": resp.StatusCode,
		})
	}
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("Encode response")
	}
}
