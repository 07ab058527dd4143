// Package http provides the REST surface over the service registry.
//
// Endpoints cover health, service listing and discovery, tool execution
// and a JSON metrics summary. The Prometheus scrape endpoint and the
// WebSocket surface live in their own packages.
package http
