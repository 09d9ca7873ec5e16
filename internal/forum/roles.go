package forum

import (
	"github.com/google/uuid"

	"github.com/GianniRod/Real-Futbol/internal/models"
)

type Role string

const (
	RoleDeveloper Role = "developer"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

type Action string

const (
	ActionDeleteMessage    Action = "delete_message"
	ActionMute             Action = "mute"
	ActionBan              Action = "ban"
	ActionManageModerators Action = "manage_moderators"
)

// Can is the permission table. Every moderation entry point checks it exactly
// once instead of comparing role strings inline.
func Can(role Role, action Action) bool {
	switch role {
	case RoleDeveloper:
		return true
	case RoleModerator:
		return action == ActionDeleteMessage || action == ActionMute || action == ActionBan
	default:
		return false
	}
}

// ModeratorLookup is the slice of the moderation store the resolver needs.
type ModeratorLookup interface {
	GetModerator(userID uuid.UUID) (*models.ModeratorEntry, error)
}

// Resolver maps a user id to a role: the fixed developer id wins, then the
// moderator registry, then plain user.
type Resolver struct {
	developerUID uuid.UUID
	moderators   ModeratorLookup
}

func NewResolver(developerUID uuid.UUID, moderators ModeratorLookup) *Resolver {
	return &Resolver{developerUID: developerUID, moderators: moderators}
}

// Resolve returns the role for a user id. A failing registry lookup degrades
// to RoleUser; roles must never escalate on error.
func (r *Resolver) Resolve(userID uuid.UUID) Role {
	if userID == uuid.Nil {
		return RoleUser
	}
	if userID == r.developerUID {
		return RoleDeveloper
	}

	entry, err := r.moderators.GetModerator(userID)
	if err != nil || entry == nil {
		return RoleUser
	}
	return RoleModerator
}

// DeveloperUID exposes the protected developer identity
func (r *Resolver) DeveloperUID() uuid.UUID {
	return r.developerUID
}
