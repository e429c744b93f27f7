package middleware

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
)

type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity injects the request-scoped identity provider into the context.
func WithIdentity(ctx context.Context, idp ports.IdentityProvider) context.Context {
	return context.WithValue(ctx, identityContextKey, idp)
}

// IdentityFromContext returns the identity provider from the context, or nil.
func IdentityFromContext(ctx context.Context) ports.IdentityProvider {
	v := ctx.Value(identityContextKey)
	if v == nil {
		return nil
	}
	idp, _ := v.(ports.IdentityProvider)
	return idp
}
