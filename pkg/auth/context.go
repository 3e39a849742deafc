package auth

import "context"

type identityKey struct{}
type bearerKey struct{}

// WithIdentity stores the verified caller identity on the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller identity, if present.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// WithBearer stores the raw bearer credential for forwarding to the backend.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

// BearerFromContext returns the raw bearer credential, if present.
func BearerFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	token, ok := ctx.Value(bearerKey{}).(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
