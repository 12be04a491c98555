// Package middleware provides HTTP middleware for the vdomctl preview server.
//
// This package includes:
//   - OpenTelemetry tracing middleware
//   - Prometheus metrics middleware
//   - slog request logging
//
// Every middleware has the func(http.Handler) http.Handler shape used by
// chi. Route labels come from the chi route pattern when one matched, so
// /frames/1 and /frames/2 share the /frames/{n} series.
//
//	r := chi.NewRouter()
//	r.Use(middleware.Logger(logger))
//	r.Use(middleware.OpenTelemetry())
//	r.Use(middleware.Prometheus(middleware.WithRegistry(registry)))
package middleware
