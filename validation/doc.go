// Package validation validates request bodies using struct tags.
//
// It wraps go-playground/validator and translates validation failures into
// the service's AppError type with field-level detail, so handlers can bind,
// validate, and respond with a single 400 body listing every bad field.
package validation
