// Package integrations provides HTTP clients for external chart services.
//
// # Overview
//
// This package contains low-level API clients for fetching saved chart
// specs and metadata. Each service has its own subpackage:
//
//   - [analytics]: the analytics service holding saved charts
//
// # Client Pattern
//
// Service clients follow a consistent pattern:
//
//	client, err := analytics.NewClient(baseURL, token, 24*time.Hour)
//	spec, err := client.FetchSpec(ctx, chartID, false)  // false = use cache
//
// Clients handle:
//   - HTTP requests with retry and backoff
//   - Response caching (file-based, configurable TTL)
//   - API-specific parsing
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality used by all service
// clients, including HTTP response caching via [httputil.Cache].
//
// [analytics]: github.com/matzehuels/chartfit/pkg/integrations/analytics
// [httputil.Cache]: github.com/matzehuels/chartfit/pkg/httputil.Cache
package integrations
