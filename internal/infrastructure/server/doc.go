// Package server wires configuration, logging, metrics, providers and
// transports into a runnable HTTP server with graceful shutdown.
package server
