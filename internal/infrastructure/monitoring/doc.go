// Package monitoring provides Prometheus metrics for the backend.
//
// Each Metrics instance carries its own registry, so tests can construct
// collectors freely without duplicate registration panics.
//
// Collected:
//   - HTTP request counts and durations (gin middleware)
//   - Service tool call counts and durations
//   - Expression commit outcomes (ok, invalid, nan, overflow)
//   - Currency conversions by pair
//   - Active WebSocket connections and message counts
package monitoring
