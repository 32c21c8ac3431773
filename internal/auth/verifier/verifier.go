package verifier

import (
	"context"

	"github.com/Karthikraja2345/ksmatri/internal/auth"
)

// Verifier defines the contract every bearer-credential verifier must
// implement. Implementations return identity facts only and must not
// perform profile creation or any authorization decision.
type Verifier interface {
	// Name returns the verifier identifier (e.g. "oidc", "hmac").
	Name() string

	// Verify validates a raw bearer token and returns the normalized
	// identity it asserts. The returned identity always carries a
	// non-empty subject and email.
	Verify(ctx context.Context, rawToken string) (*auth.Identity, error)
}
