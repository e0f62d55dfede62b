// Package user implements account registration, lookup and credential
// verification on top of the store.
package user
