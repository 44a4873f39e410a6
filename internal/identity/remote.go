package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/prodline/workorder-tracker/pkg/util/errorutil"
)

// RemoteVerifier exchanges the credential with the identity provider's
// verify endpoint, then resolves the returned subject locally.
type RemoteVerifier struct {
	verifyURL  string
	serviceKey string
	client     *http.Client
	users      UserStore
}

// NewRemoteVerifier builds a verifier that calls the provider over HTTP.
func NewRemoteVerifier(verifyURL, serviceKey string, timeout time.Duration, users UserStore) *RemoteVerifier {
	return &RemoteVerifier{
		verifyURL:  strings.TrimRight(verifyURL, "/"),
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: timeout},
		users:      users,
	}
}

type verifyResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Verify exchanges the token for a subject id and loads the local profile.
func (v *RemoteVerifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	if credential == "" {
		return nil, apperrors.NewUnauthenticated("invalid token")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.verifyURL, nil)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	if v.serviceKey != "" {
		req.Header.Set("apikey", v.serviceKey)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, apperrors.NewUnauthenticated("invalid token")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUnauthenticated("invalid token")
	}

	var subject verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&subject); err != nil || subject.ID == "" {
		return nil, apperrors.NewUnauthenticated("invalid token")
	}

	user, err := v.users.GetByID(ctx, subject.ID)
	if err != nil {
		return nil, apperrors.NewUnauthenticated("invalid token")
	}
	return fromUser(user, subject.Email), nil
}
