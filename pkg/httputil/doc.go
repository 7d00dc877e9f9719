// Package httputil provides HTTP utilities for the analytics and renderer clients.
//
// # Overview
//
// This package provides infrastructure shared by all HTTP clients:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores HTTP responses in the filesystem (~/.cache/chartfit/)
// with configurable TTL. This avoids refetching chart specs that have not
// changed between renders.
//
// Cache keys should be namespaced by source to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures
// (network errors, 5xx responses) using exponential backoff. Only errors
// wrapped in [RetryableError] are retried; a renderer rejecting a spec is
// deterministic and retrying it would only repeat the failure.
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/chartfit/
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `chartfit cache clear` or by deleting the
// cache directory.
package httputil
