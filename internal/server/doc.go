// Package server runs the site's HTTP server.
//
// It owns the server lifecycle: startup, waiting for SIGTERM, SIGINT or
// SIGQUIT, and a bounded graceful shutdown that lets in-flight requests
// finish.
package server
