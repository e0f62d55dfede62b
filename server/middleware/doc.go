// Package middleware contains the Gin middleware stack: recovery, request
// id, CORS, request logging, telemetry, the fail-open authentication filter
// and the fail-closed authorization enforcement.
package middleware
