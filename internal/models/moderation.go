package models

import (
	"time"

	"github.com/google/uuid"
)

// MuteRecord silences a user until ExpiresAt. One record per user; re-muting
// overwrites the previous record instead of extending it. Expiry is resolved
// lazily on read, there is no background sweep.
type MuteRecord struct {
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	Username        string    `json:"username" db:"username"`
	MutedAt         time.Time `json:"muted_at" db:"muted_at"`
	ExpiresAt       time.Time `json:"expires_at" db:"expires_at"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
}

// BanRecord is permanent until explicitly removed.
type BanRecord struct {
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	Username string    `json:"username" db:"username"`
	BannedAt time.Time `json:"banned_at" db:"banned_at"`
}

// ModeratorEntry is one row of the moderator registry maintained by the
// developer account.
type ModeratorEntry struct {
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	Username string    `json:"username" db:"username"`
	AddedBy  uuid.UUID `json:"added_by" db:"added_by"`
	AddedAt  time.Time `json:"added_at" db:"added_at"`
}

type MuteRequest struct {
	Username        string `json:"username" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
}

type BanRequest struct {
	Username string `json:"username" binding:"required"`
}

type ModeratorRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}
