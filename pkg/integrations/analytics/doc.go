// Package analytics is a client for the analytics service's chart API.
//
// The service stores saved charts; this client lists them and fetches
// their raw specs for rendering. Authentication is a bearer token.
package analytics
