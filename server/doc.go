// Package server runs the HTTP surface of the identity service: a Gin
// engine behind an h2c-wrapped http.Server, the standard middleware stack
// and the default health and info endpoints.
package server
