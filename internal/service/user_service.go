package service

import (
	"context"
	"strings"

	"github.com/prodline/workorder-tracker/internal/domain"
	"github.com/prodline/workorder-tracker/internal/repository"
	apperrors "github.com/prodline/workorder-tracker/pkg/util/errorutil"
)

// UserService manages locally-mirrored user profiles. Accounts are
// provisioned by the identity provider; this service never inserts rows.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// List returns every profile, newest first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// Get fetches one profile.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapLookupErr(err, "user", id)
	}
	return user, nil
}

// UpdateRole assigns a new role.
func (s *UserService) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": role})
	}
	user, err := s.users.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, mapLookupErr(err, "user", id)
	}
	return user, nil
}

// UpdateAccess flips the access-granted flag.
func (s *UserService) UpdateAccess(ctx context.Context, id string, granted bool) (*domain.User, error) {
	user, err := s.users.UpdateAccess(ctx, id, granted)
	if err != nil {
		return nil, mapLookupErr(err, "user", id)
	}
	return user, nil
}

// UpdateProfile changes the display name.
func (s *UserService) UpdateProfile(ctx context.Context, id, fullName string) (*domain.User, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, apperrors.NewValidationError("full_name required", nil)
	}
	user, err := s.users.UpdateProfile(ctx, id, fullName)
	if err != nil {
		return nil, mapLookupErr(err, "user", id)
	}
	return user, nil
}

// Delete removes one profile.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return mapLookupErr(err, "user", id)
	}
	return nil
}
