package auth

import "context"

// Context keys for auth-related values.
type contextKey int

const claimsKey contextKey = iota

// WithClaims returns a new context carrying verified claims.
func WithClaims(ctx context.Context, claims any) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFrom retrieves verified claims of type T from the context.
// The second return is false when no claims are present or they were
// stored with a different type.
func ClaimsFrom[T any](ctx context.Context) (T, bool) {
	claims, ok := ctx.Value(claimsKey).(T)
	return claims, ok
}
