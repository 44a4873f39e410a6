package domain

// Action identifies an operation gated by the access guard.
type Action string

const (
	ActionTicketCreate Action = "ticket.create"
	ActionTicketRead   Action = "ticket.read"
	ActionTicketUpdate Action = "ticket.update"
	ActionTicketDelete Action = "ticket.delete"

	ActionWorkOrderCreate Action = "work_order.create"
	ActionWorkOrderRead   Action = "work_order.read"
	ActionWorkOrderUpdate Action = "work_order.update"
	ActionWorkOrderDelete Action = "work_order.delete"

	ActionAreaCreate Action = "area.create"
	ActionAreaRead   Action = "area.read"
	ActionAreaUpdate Action = "area.update"
	ActionAreaDelete Action = "area.delete"

	ActionUserList          Action = "user.list"
	ActionUserRead          Action = "user.read"
	ActionUserUpdateProfile Action = "user.update_profile"
	ActionUserUpdateRole    Action = "user.update_role"
	ActionUserUpdateAccess  Action = "user.update_access"
	ActionUserDelete        Action = "user.delete"

	ActionImageUpload Action = "image.upload"
)

// DenyReason classifies why the policy refused an action.
type DenyReason string

const (
	DenyReasonNotOwner         DenyReason = "NotOwner"
	DenyReasonInsufficientRole DenyReason = "InsufficientRole"
)

// AccessDecision is the outcome of one policy evaluation. It lives for a
// single request and is never persisted.
type AccessDecision struct {
	Allowed bool
	Reason  DenyReason
}

// Allow is the affirmative decision.
func Allow() AccessDecision {
	return AccessDecision{Allowed: true}
}

// Deny builds a refusal carrying its reason.
func Deny(reason DenyReason) AccessDecision {
	return AccessDecision{Allowed: false, Reason: reason}
}
