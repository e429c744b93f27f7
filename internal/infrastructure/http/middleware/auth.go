package middleware

import (
	"net/http"
	"strings"

	"github.com/amirhosseinghanipour/taskhub/internal/application/identity"
)

// Identity attaches a fresh identity.Provider to every request. It never rejects: a missing or bad
// bearer token simply resolves to nobody, and each use case decides whether that is acceptable.
type Identity struct {
	factory *identity.Factory
}

func NewIdentity(factory *identity.Factory) *Identity {
	return &Identity{factory: factory}
}

func (m *Identity) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idp := m.factory.ForRequest(bearerToken(r))
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), idp)))
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}
