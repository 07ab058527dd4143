// Package middleware provides HTTP middleware for the gin router:
// CORS for the cross-origin widget frontend and token-bucket rate
// limiting, per client IP or global.
package middleware
