package identity

import (
	"context"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodline/workorder-tracker/internal/domain"
	apperrors "github.com/prodline/workorder-tracker/pkg/util/errorutil"
)

type fakeUserStore struct {
	users map[string]*domain.User
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, assert.AnError
	}
	return user, nil
}

func signToken(t *testing.T, secret, subject, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestLocalVerify_ResolvesProfile(t *testing.T) {
	store := &fakeUserStore{users: map[string]*domain.User{
		"u1": {ID: "u1", Email: "op@plant.example", FullName: "Jo Rivera", Role: domain.RoleLineOperator, AccessGranted: true},
	}}
	verifier := NewLocalVerifier("secret", store)

	resolved, err := verifier.Verify(context.Background(), signToken(t, "secret", "u1", "op@plant.example"))

	require.NoError(t, err)
	assert.Equal(t, "u1", resolved.ID)
	assert.Equal(t, domain.RoleLineOperator, resolved.Role)
	assert.True(t, resolved.AccessGranted)
}

func TestLocalVerify_BadSignature(t *testing.T) {
	store := &fakeUserStore{users: map[string]*domain.User{}}
	verifier := NewLocalVerifier("secret", store)

	_, err := verifier.Verify(context.Background(), signToken(t, "wrong-secret", "u1", ""))

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNAUTHENTICATED"))
}

func TestLocalVerify_ExpiredToken(t *testing.T) {
	store := &fakeUserStore{users: map[string]*domain.User{}}
	verifier := NewLocalVerifier("secret", store)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), signed)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNAUTHENTICATED"))
}

func TestLocalVerify_MissingProfileLooksLikeBadToken(t *testing.T) {
	store := &fakeUserStore{users: map[string]*domain.User{}}
	verifier := NewLocalVerifier("secret", store)

	_, err := verifier.Verify(context.Background(), signToken(t, "secret", "ghost", ""))

	require.Error(t, err)
	// Indistinguishable from an invalid credential.
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "UNAUTHENTICATED", domainErr.Code)
	assert.Equal(t, "invalid token", domainErr.Message)
}

func TestLocalVerify_EmptyCredential(t *testing.T) {
	verifier := NewLocalVerifier("secret", &fakeUserStore{})

	_, err := verifier.Verify(context.Background(), "")

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNAUTHENTICATED"))
}
