package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodline/workorder-tracker/internal/domain"
	apperrors "github.com/prodline/workorder-tracker/pkg/util/errorutil"
)

func TestRemoteVerify_ResolvesProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(verifyResponse{ID: "u1", Email: "op@plant.example"})
	}))
	defer server.Close()

	store := &fakeUserStore{users: map[string]*domain.User{
		"u1": {ID: "u1", Role: domain.RoleAdmin, AccessGranted: true},
	}}
	verifier := NewRemoteVerifier(server.URL, "service-key", 5*time.Second, store)

	resolved, err := verifier.Verify(context.Background(), "good-token")

	require.NoError(t, err)
	assert.Equal(t, "u1", resolved.ID)
	assert.Equal(t, "op@plant.example", resolved.Email)
	assert.Equal(t, domain.RoleAdmin, resolved.Role)
}

func TestRemoteVerify_RejectedByProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	verifier := NewRemoteVerifier(server.URL, "", 5*time.Second, &fakeUserStore{})

	_, err := verifier.Verify(context.Background(), "expired-token")

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNAUTHENTICATED"))
}

func TestRemoteVerify_ProviderUnreachable(t *testing.T) {
	verifier := NewRemoteVerifier("http://127.0.0.1:1", "", time.Second, &fakeUserStore{})

	_, err := verifier.Verify(context.Background(), "token")

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNAUTHENTICATED"))
}
