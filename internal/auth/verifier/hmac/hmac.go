package hmac

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Karthikraja2345/ksmatri/internal/auth"
)

const verifierName = "hmac"

// Verifier validates HS256 tokens signed with a shared secret. It exists
// for local development and tests, where no OIDC issuer is reachable.
type Verifier struct {
	secret []byte
}

func New(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("hmac verifier requires a non-empty secret")
	}
	return &Verifier{secret: []byte(secret)}, nil
}

// Name returns the verifier identifier used by the registry.
func (v *Verifier) Name() string {
	return verifierName
}

func (v *Verifier) Verify(
	_ context.Context,
	rawToken string,
) (*auth.Identity, error) {

	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return nil, errors.New("token missing sub claim")
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, errors.New("token missing email claim")
	}

	emailVerified, _ := claims["email_verified"].(bool)

	return &auth.Identity{
		Verifier:      verifierName,
		SubjectID:     subject,
		Email:         email,
		EmailVerified: emailVerified,
	}, nil
}
