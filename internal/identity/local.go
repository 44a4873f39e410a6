package identity

import (
	"context"
	"errors"

	jwt "github.com/golang-jwt/jwt/v5"

	apperrors "github.com/prodline/workorder-tracker/pkg/util/errorutil"
)

// LocalVerifier validates provider-signed HS256 tokens with the shared
// secret and resolves the subject against the local user store.
type LocalVerifier struct {
	secret []byte
	users  UserStore
}

// NewLocalVerifier builds a verifier for provider JWTs.
func NewLocalVerifier(secret string, users UserStore) *LocalVerifier {
	return &LocalVerifier{secret: []byte(secret), users: users}
}

type providerClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verify parses the token and loads the caller's profile.
func (v *LocalVerifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	if credential == "" {
		return nil, apperrors.NewUnauthenticated("invalid token")
	}

	parsed, err := jwt.ParseWithClaims(credential, &providerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, apperrors.NewUnauthenticated("invalid token")
	}
	claims, ok := parsed.Claims.(*providerClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, apperrors.NewUnauthenticated("invalid token")
	}

	user, err := v.users.GetByID(ctx, claims.Subject)
	if err != nil {
		// A missing profile looks identical to a bad credential.
		return nil, apperrors.NewUnauthenticated("invalid token")
	}
	return fromUser(user, claims.Email), nil
}
