package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Karthikraja2345/ksmatri/internal/auth"
	"github.com/Karthikraja2345/ksmatri/internal/auth/verifier"
)

// unexported, collision-proof context key
type identityContextKeyType struct{}

var identityKey = identityContextKeyType{}

// IdentityFromContext extracts the verified identity from context.
func IdentityFromContext(ctx context.Context) (*auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*auth.Identity)
	return id, ok
}

type AuthMiddleware struct {
	Verifier verifier.Verifier
}

func NewAuthMiddleware(v verifier.Verifier) *AuthMiddleware {
	return &AuthMiddleware{Verifier: v}
}

// RequireAuth rejects the request before any business logic runs unless
// it carries a valid bearer token.
func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read the Authorization header
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rawToken := strings.TrimPrefix(header, "Bearer ")
		if rawToken == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 2. Verify the credential
		identity, err := a.Verifier.Verify(r.Context(), rawToken)
		if err != nil || identity == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 3. Attach identity to context
		ctx := context.WithValue(r.Context(), identityKey, identity)

		// 4. Continue request
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
