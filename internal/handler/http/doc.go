// Package http implements the HTTP transport layer of the site.
//
// It exposes route wiring, request handlers, and middleware for the JSON
// API. Cross-cutting concerns such as session gating, request tracing,
// access logging, and response compression are handled in this package
// before requests are delegated to the service layer.
package http
