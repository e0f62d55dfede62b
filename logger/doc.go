// Package logger provides structured logging built on zerolog.
//
// The service initializes a global logger from configuration at startup;
// components obtain tagged child loggers via WithComponent. Package-level
// helpers (Info, Warn, ...) delegate to the global logger so infrastructure
// code without an injected logger can still log consistently.
package logger
