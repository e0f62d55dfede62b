// Package store persists users and roles. The production backend is
// PostgreSQL through GORM; an in-memory backend backs tests and local
// development without a database.
package store
