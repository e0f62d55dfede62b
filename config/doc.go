// Package config loads service configuration from YAML files, .env files
// and environment variables, in that order of precedence (lowest first).
// Secrets such as signing keys are expected to arrive via the environment
// and never live in checked-in YAML.
package config
