package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prodline/workorder-tracker/internal/domain"
)

func TestDecide_AdminAllowsEverything(t *testing.T) {
	actions := []domain.Action{
		domain.ActionTicketCreate,
		domain.ActionTicketRead,
		domain.ActionTicketUpdate,
		domain.ActionTicketDelete,
		domain.ActionWorkOrderCreate,
		domain.ActionWorkOrderUpdate,
		domain.ActionWorkOrderDelete,
		domain.ActionAreaCreate,
		domain.ActionAreaUpdate,
		domain.ActionAreaDelete,
		domain.ActionUserList,
		domain.ActionUserUpdateRole,
		domain.ActionUserUpdateAccess,
		domain.ActionUserDelete,
		domain.ActionImageUpload,
	}
	for _, action := range actions {
		for _, isOwner := range []bool{true, false} {
			decision := Decide(action, domain.RoleAdmin, isOwner)
			assert.True(t, decision.Allowed, "admin should be allowed %s (owner=%v)", action, isOwner)
		}
	}
}

func TestDecide_OperatorTicketOwnership(t *testing.T) {
	for _, action := range []domain.Action{domain.ActionTicketUpdate, domain.ActionTicketDelete} {
		owned := Decide(action, domain.RoleLineOperator, true)
		assert.True(t, owned.Allowed, "owner should be allowed %s", action)

		notOwned := Decide(action, domain.RoleLineOperator, false)
		assert.False(t, notOwned.Allowed)
		assert.Equal(t, domain.DenyReasonNotOwner, notOwned.Reason)
	}
}

func TestDecide_OperatorAllowedActions(t *testing.T) {
	actions := []domain.Action{
		domain.ActionTicketCreate,
		domain.ActionTicketRead,
		domain.ActionWorkOrderRead,
		domain.ActionAreaRead,
		domain.ActionImageUpload,
	}
	for _, action := range actions {
		decision := Decide(action, domain.RoleLineOperator, false)
		assert.True(t, decision.Allowed, "operator should be allowed %s", action)
	}
}

func TestDecide_OperatorDeniedPrivilegedActions(t *testing.T) {
	actions := []domain.Action{
		domain.ActionWorkOrderCreate,
		domain.ActionWorkOrderUpdate,
		domain.ActionWorkOrderDelete,
		domain.ActionAreaCreate,
		domain.ActionAreaUpdate,
		domain.ActionAreaDelete,
		domain.ActionUserList,
		domain.ActionUserUpdateRole,
		domain.ActionUserUpdateAccess,
		domain.ActionUserDelete,
	}
	for _, action := range actions {
		// Ownership is irrelevant for these.
		for _, isOwner := range []bool{true, false} {
			decision := Decide(action, domain.RoleLineOperator, isOwner)
			assert.False(t, decision.Allowed, "operator should be denied %s", action)
			assert.Equal(t, domain.DenyReasonInsufficientRole, decision.Reason)
		}
	}
}

func TestDecide_OperatorOwnProfile(t *testing.T) {
	for _, action := range []domain.Action{domain.ActionUserRead, domain.ActionUserUpdateProfile} {
		self := Decide(action, domain.RoleLineOperator, true)
		assert.True(t, self.Allowed)

		other := Decide(action, domain.RoleLineOperator, false)
		assert.False(t, other.Allowed)
		assert.Equal(t, domain.DenyReasonInsufficientRole, other.Reason)
	}
}

func TestDecide_UnknownRoleDenied(t *testing.T) {
	decision := Decide(domain.ActionTicketCreate, domain.Role("supervisor"), false)
	assert.False(t, decision.Allowed)
	assert.Equal(t, domain.DenyReasonInsufficientRole, decision.Reason)
}
