package identity

import (
	"context"

	"github.com/prodline/workorder-tracker/internal/domain"
)

// Identity is the resolved caller for one request. It is passed explicitly
// to every guard and service call rather than read from ambient state.
type Identity struct {
	ID            string
	Email         string
	FullName      string
	Role          domain.Role
	AccessGranted bool
}

// Verifier resolves an opaque bearer credential to a local identity.
// Implementations fail with an UNAUTHENTICATED error for a bad credential
// and for a missing local profile alike; callers cannot tell which.
type Verifier interface {
	Verify(ctx context.Context, credential string) (*Identity, error)
}

// UserStore is the subset of user persistence the verifier needs.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

func fromUser(user *domain.User, email string) *Identity {
	if email == "" {
		email = user.Email
	}
	return &Identity{
		ID:            user.ID,
		Email:         email,
		FullName:      user.FullName,
		Role:          user.Role,
		AccessGranted: user.AccessGranted,
	}
}
