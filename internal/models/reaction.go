package models

import (
	"time"

	"github.com/google/uuid"
)

type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

// IsValid reports whether t is one of the two supported reaction types.
func (t ReactionType) IsValid() bool {
	return t == ReactionLike || t == ReactionDislike
}

// Reaction is one user's vote on one message. At most one row exists per
// (message_id, user_id) pair; the toggle logic in the forum engine maintains
// that, not a storage constraint.
type Reaction struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	MessageID uuid.UUID    `json:"message_id" db:"message_id"`
	UserID    uuid.UUID    `json:"user_id" db:"user_id"`
	Type      ReactionType `json:"type" db:"type"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// ReactionSummary is the per-message aggregate handed to the view layer.
type ReactionSummary struct {
	Likes         int  `json:"likes"`
	Dislikes      int  `json:"dislikes"`
	ViewerLike    bool `json:"viewer_like"`
	ViewerDislike bool `json:"viewer_dislike"`
}

type ReactRequest struct {
	MessageID uuid.UUID    `json:"message_id" binding:"required"`
	Type      ReactionType `json:"type" binding:"required"`
}
