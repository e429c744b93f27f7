package ports

import (
	"context"
	"errors"

	"github.com/amirhosseinghanipour/taskhub/internal/domain"
)

// PasswordHasher is owned by the domain (UserService needs it); re-exported for wiring.
type PasswordHasher = domain.PasswordHasher

// ErrTokenExpired is returned by TokenIssuer.ValidateAccessToken for a well-formed but expired token.
var ErrTokenExpired = errors.New("token expired")

// TokenIssuer signs and validates bearer access tokens (RS256).
type TokenIssuer interface {
	IssueAccessToken(userID, role string, expiresInSeconds int64) (string, error)
	// ValidateAccessToken returns the subject user id, or an error for malformed, tampered or
	// expired (ErrTokenExpired) tokens.
	ValidateAccessToken(tokenString string) (userID string, err error)
}

// IdentityProvider resolves the calling principal for exactly one request.
type IdentityProvider interface {
	// CurrentUser returns the caller or domerrors.ErrUnauthenticated.
	CurrentUser(ctx context.Context) (*domain.User, error)
	// CurrentUserOrNone returns (nil, nil) when there is no valid credential.
	CurrentUserOrNone(ctx context.Context) (*domain.User, error)
}
