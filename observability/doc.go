// Package observability wires OpenTelemetry tracing and metrics for the
// identity service. Both providers export over OTLP/HTTP and are disabled
// by default; enabling them is a config concern, not a code change.
package observability
