// Package identity resolves the calling user from a bearer credential, once per request.
package identity

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
	"github.com/amirhosseinghanipour/taskhub/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskhub/internal/domain/errors"
)

// Factory holds the long-lived collaborators and mints one Provider per request.
type Factory struct {
	tokens ports.TokenIssuer
	users  ports.UserReader
}

func NewFactory(tokens ports.TokenIssuer, users ports.UserReader) *Factory {
	return &Factory{tokens: tokens, users: users}
}

// ForRequest returns a Provider bound to credential (the raw bearer token, possibly empty).
// The Provider caches the resolved user, so it must not outlive the request.
func (f *Factory) ForRequest(credential string) *Provider {
	return &Provider{tokens: f.tokens, users: f.users, credential: credential}
}

// Provider implements ports.IdentityProvider for a single request. Not safe for concurrent use.
type Provider struct {
	tokens     ports.TokenIssuer
	users      ports.UserReader
	credential string
	resolved   *domain.User
}

// CurrentUserOrNone decodes the credential and loads the user it names. Malformed, expired or
// tampered tokens and missing or inactive users all yield (nil, nil); only storage failures are errors.
func (p *Provider) CurrentUserOrNone(ctx context.Context) (*domain.User, error) {
	if p.resolved != nil {
		return p.resolved, nil
	}
	if p.credential == "" {
		return nil, nil
	}
	subject, err := p.tokens.ValidateAccessToken(p.credential)
	if err != nil {
		return nil, nil
	}
	id, err := domain.ParseUserID(subject)
	if err != nil {
		return nil, nil
	}
	user, err := p.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive() {
		return nil, nil
	}
	p.resolved = user
	return user, nil
}

// CurrentUser is CurrentUserOrNone that fails with ErrUnauthenticated when nobody is resolved.
func (p *Provider) CurrentUser(ctx context.Context) (*domain.User, error) {
	user, err := p.CurrentUserOrNone(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUnauthenticated
	}
	return user, nil
}

var _ ports.IdentityProvider = (*Provider)(nil)
