// Package authz decides whether an authenticated (or anonymous) request may
// reach its handler.
//
// A Policy is a static, ordered table of method+path rules loaded once at
// startup and immutable afterwards, so concurrent reads need no
// synchronization. Matching is first-match-wins; routes matching no rule
// default to requiring authentication (deny-by-default).
//
// Authorization is fail-closed and entirely separate from the fail-open
// authentication filter: the filter only annotates requests, this package is
// the sole component that rejects them.
package authz
