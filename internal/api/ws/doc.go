// Package ws provides the WebSocket surface for interactive key events.
//
// Each connection gets its own calculator session, so concurrent
// clients never share expression state. Inbound frames are KeyMessage
// ("key" with an action, or "ping"); replies are WSFrame ("state",
// "pong", "error").
package ws
