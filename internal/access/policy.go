package access

import (
	"github.com/prodline/workorder-tracker/internal/domain"
)

// Decide maps (action, role, ownership) to an allow/deny decision.
// It is a pure function with no side effects; ownership resolution is the
// caller's problem.
func Decide(action domain.Action, role domain.Role, isOwner bool) domain.AccessDecision {
	if role == domain.RoleAdmin {
		return domain.Allow()
	}

	switch action {
	case domain.ActionTicketCreate, domain.ActionImageUpload:
		return domain.Allow()
	case domain.ActionTicketRead, domain.ActionWorkOrderRead, domain.ActionAreaRead:
		return domain.Allow()
	case domain.ActionTicketUpdate, domain.ActionTicketDelete:
		if isOwner {
			return domain.Allow()
		}
		return domain.Deny(domain.DenyReasonNotOwner)
	case domain.ActionUserRead, domain.ActionUserUpdateProfile:
		// Operators may inspect and edit their own profile only.
		if isOwner {
			return domain.Allow()
		}
		return domain.Deny(domain.DenyReasonInsufficientRole)
	default:
		return domain.Deny(domain.DenyReasonInsufficientRole)
	}
}
