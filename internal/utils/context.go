// Package utils provides small helpers shared by the handlers and services:
// typed context keys, JSON response writing and id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/remy-site/internal/auth"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey is the key under which the role middleware stores the
// authenticated caller.
var IdentityCtxKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, identity)
}

// IdentityFromContext retrieves the caller stored by WithIdentity.
//
// ok is false when no identity was stored or the value has another type.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(auth.Identity)
	return identity, ok
}
