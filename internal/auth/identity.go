package auth

// Identity represents a verified external authentication identity.
// It contains facts asserted by the identity provider, no decisions.
type Identity struct {
	Verifier      string // verifier that produced this identity, e.g. "oidc"
	SubjectID     string // provider-scoped stable user identifier (sub)
	Email         string // email returned by the provider
	EmailVerified bool   // whether the provider asserts email ownership
}
