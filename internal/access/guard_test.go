package access

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodline/workorder-tracker/internal/domain"
	"github.com/prodline/workorder-tracker/internal/identity"
	apperrors "github.com/prodline/workorder-tracker/pkg/util/errorutil"
)

type fakeVerifier struct {
	identity *identity.Identity
	err      error
	calls    int
}

func (f *fakeVerifier) Verify(_ context.Context, _ string) (*identity.Identity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

type fakeOwnershipStore struct {
	owner string
	err   error
	calls []string
}

func (f *fakeOwnershipStore) GetOwner(_ context.Context, ticketID string) (string, error) {
	f.calls = append(f.calls, ticketID)
	if f.err != nil {
		return "", f.err
	}
	return f.owner, nil
}

func operator(id string) *identity.Identity {
	return &identity.Identity{ID: id, Role: domain.RoleLineOperator, AccessGranted: true}
}

func admin(id string) *identity.Identity {
	return &identity.Identity{ID: id, Role: domain.RoleAdmin, AccessGranted: true}
}

func TestCheckAccess_UnauthenticatedFailsFast(t *testing.T) {
	verifier := &fakeVerifier{err: apperrors.NewUnauthenticated("invalid token")}
	store := &fakeOwnershipStore{}
	guard := NewGuard(verifier, store, nil)

	_, err := guard.CheckAccess(context.Background(), domain.ActionTicketUpdate, "bad-token", "t1")

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNAUTHENTICATED"))
	// The ownership resolver must never run for an unauthenticated caller.
	assert.Empty(t, store.calls)
}

func TestCheckAccess_OperatorNotOwnerForbidden(t *testing.T) {
	verifier := &fakeVerifier{identity: operator("u1")}
	store := &fakeOwnershipStore{owner: "someone-else"}
	guard := NewGuard(verifier, store, nil)

	for _, action := range []domain.Action{domain.ActionTicketUpdate, domain.ActionTicketDelete} {
		_, err := guard.CheckAccess(context.Background(), action, "token", "t1")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

		domainErr := apperrors.ToDomainError(err)
		assert.Equal(t, string(domain.DenyReasonNotOwner), domainErr.Details["reason"])
	}
}

func TestCheckAccess_OperatorOwnerAllowed(t *testing.T) {
	verifier := &fakeVerifier{identity: operator("u1")}
	store := &fakeOwnershipStore{owner: "u1"}
	guard := NewGuard(verifier, store, nil)

	caller, err := guard.CheckAccess(context.Background(), domain.ActionTicketUpdate, "token", "t1")

	require.NoError(t, err)
	assert.Equal(t, "u1", caller.ID)
	assert.Equal(t, []string{"t1"}, store.calls)
}

func TestCheckAccess_AdminSkipsOwnershipLookup(t *testing.T) {
	verifier := &fakeVerifier{identity: admin("a1")}
	store := &fakeOwnershipStore{owner: "someone-else"}
	guard := NewGuard(verifier, store, nil)

	_, err := guard.CheckAccess(context.Background(), domain.ActionTicketDelete, "token", "t1")

	require.NoError(t, err)
	assert.Empty(t, store.calls)
}

func TestCheckAccess_MissingTicketNotFound(t *testing.T) {
	verifier := &fakeVerifier{identity: operator("u1")}
	store := &fakeOwnershipStore{err: pgx.ErrNoRows}
	guard := NewGuard(verifier, store, nil)

	_, err := guard.CheckAccess(context.Background(), domain.ActionTicketUpdate, "token", "missing")

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestCheckAccess_AccessNotGranted(t *testing.T) {
	caller := operator("u1")
	caller.AccessGranted = false
	verifier := &fakeVerifier{identity: caller}
	store := &fakeOwnershipStore{}
	guard := NewGuard(verifier, store, nil)

	_, err := guard.CheckAccess(context.Background(), domain.ActionTicketCreate, "token", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	// The pending user may still read their own profile.
	resolved, err := guard.CheckAccess(context.Background(), domain.ActionUserRead, "token", "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", resolved.ID)
}

func TestCheckAccess_ReadNeedsNoOwnership(t *testing.T) {
	verifier := &fakeVerifier{identity: operator("u1")}
	store := &fakeOwnershipStore{owner: "someone-else"}
	guard := NewGuard(verifier, store, nil)

	_, err := guard.CheckAccess(context.Background(), domain.ActionTicketRead, "token", "t1")

	require.NoError(t, err)
	assert.Empty(t, store.calls)
}
