// Package main is the entry point for the Calcdeck backend server.
//
// The server exposes a scientific calculator and a fixed-rate currency
// converter as tool services, over REST and WebSocket:
//
//	Frontend (widget) → REST /services/execute
//	                  → WebSocket /ws (per-connection calculator session)
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
