package domain

// Moderation statuses shared across entities
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

	// User account statuses
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// Action is a moderation action name as received from the API or CLI
type Action string

const (
	ActionApprove   Action = "approve"
	ActionReject    Action = "reject"
	ActionPin       Action = "pin"
	ActionUnpin     Action = "unpin"
	ActionArchive   Action = "archive"
	ActionUnarchive Action = "unarchive"
	ActionFeature   Action = "feature"
	ActionUnfeature Action = "unfeature"
	ActionSuspend   Action = "suspend"
	ActionActivate  Action = "activate"
)

// Entity names used to select the allowed action set
const (
	EntityApplication = "application"
	EntityPost        = "post"
	EntityProject     = "project"
	EntityUser        = "user"
	EntityClaim       = "claim"
)

// actionSets maps each entity to the actions a reviewer may apply.
// Transitions are deliberately unguarded by origin state: any allowed
// action can be applied regardless of the current status, so re-running
// an action is an overwrite, not an error.
var actionSets = map[string]map[Action]bool{
	EntityApplication: {
		ActionApprove: true,
		ActionReject:  true,
	},
	EntityClaim: {
		ActionApprove: true,
		ActionReject:  true,
	},
	EntityPost: {
		ActionApprove:   true,
		ActionReject:    true,
		ActionPin:       true,
		ActionUnpin:     true,
		ActionArchive:   true,
		ActionUnarchive: true,
	},
	EntityProject: {
		ActionApprove:   true,
		ActionReject:    true,
		ActionFeature:   true,
		ActionUnfeature: true,
	},
	EntityUser: {
		ActionSuspend:  true,
		ActionActivate: true,
	},
}

// IsAllowed reports whether the action belongs to the entity's action set
func IsAllowed(entity string, action Action) bool {
	set, ok := actionSets[entity]
	if !ok {
		return false
	}
	return set[action]
}

// RequiresReason reports whether the action must carry a non-empty reason
func (a Action) RequiresReason() bool {
	return a == ActionReject || a == ActionSuspend
}

// ChangesStatus reports whether the action writes the status column
// (as opposed to an independent boolean flag like is_pinned).
func (a Action) ChangesStatus() bool {
	switch a {
	case ActionApprove, ActionReject, ActionSuspend, ActionActivate:
		return true
	}
	return false
}

// Updates returns the column updates an action performs. Audit columns
// (reviewed_at, reviewer_notes, reviewed_by) are merged in by the caller
// so every transition stays a single atomic write.
func (a Action) Updates() map[string]interface{} {
	switch a {
	case ActionApprove:
		return map[string]interface{}{"status": StatusApproved}
	case ActionReject:
		return map[string]interface{}{"status": StatusRejected}
	case ActionSuspend:
		return map[string]interface{}{"status": StatusSuspended}
	case ActionActivate:
		return map[string]interface{}{"status": StatusActive}
	case ActionPin:
		return map[string]interface{}{"is_pinned": true}
	case ActionUnpin:
		return map[string]interface{}{"is_pinned": false}
	case ActionArchive:
		return map[string]interface{}{"is_archived": true}
	case ActionUnarchive:
		return map[string]interface{}{"is_archived": false}
	case ActionFeature:
		return map[string]interface{}{"is_featured": true}
	case ActionUnfeature:
		return map[string]interface{}{"is_featured": false}
	}
	return nil
}
