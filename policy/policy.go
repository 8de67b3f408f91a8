// Package policy holds the single access-control decision function used
// by every read and mutation path.
package policy

import (
	"clipvault/entities"
)

type Operation string

const (
	OpView             Operation = "view"
	OpToggleVisibility Operation = "toggle_visibility"
	OpDelete           Operation = "delete"
)

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Decide is pure and total: every combination of actor, record and
// operation yields a decision. An empty actorID means anonymous.
func Decide(actorID string, video *entities.Video, op Operation) Decision {
	if video == nil {
		return deny("not visible")
	}

	isOwner := actorID != "" && actorID == video.UserID

	switch op {
	case OpView:
		if video.IsPublic || isOwner {
			return allow()
		}
		return deny("not visible")
	case OpToggleVisibility, OpDelete:
		if isOwner {
			return allow()
		}
		return deny("forbidden")
	default:
		return deny("forbidden")
	}
}
