package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/GianniRod/Real-Futbol/internal/database"
	"github.com/GianniRod/Real-Futbol/internal/models"
)

type ModerationRepository struct {
	db *database.DB
}

func NewModerationRepository(db *database.DB) *ModerationRepository {
	return &ModerationRepository{db: db}
}

// UpsertMute writes a mute record, overwriting any previous one for the user
func (r *ModerationRepository) UpsertMute(mute *models.MuteRecord) error {
	query := `
		INSERT INTO mutes (user_id, username, muted_at, expires_at, duration_minutes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET username = $2, muted_at = $3, expires_at = $4, duration_minutes = $5
	`

	_, err := r.db.Exec(query, mute.UserID, mute.Username, mute.MutedAt, mute.ExpiresAt, mute.DurationMinutes)
	if err != nil {
		return fmt.Errorf("failed to upsert mute: %w", err)
	}
	return nil
}

// GetMute returns the user's mute record, or nil if there is none
func (r *ModerationRepository) GetMute(userID uuid.UUID) (*models.MuteRecord, error) {
	query := `SELECT user_id, username, muted_at, expires_at, duration_minutes FROM mutes WHERE user_id = $1`

	mute := &models.MuteRecord{}
	err := r.db.QueryRow(query, userID).Scan(
		&mute.UserID,
		&mute.Username,
		&mute.MutedAt,
		&mute.ExpiresAt,
		&mute.DurationMinutes,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mute: %w", err)
	}
	return mute, nil
}

// DeleteMute removes a mute record. Deleting an absent record is not an error.
func (r *ModerationRepository) DeleteMute(userID uuid.UUID) error {
	query := `DELETE FROM mutes WHERE user_id = $1`
	if _, err := r.db.Exec(query, userID); err != nil {
		return fmt.Errorf("failed to delete mute: %w", err)
	}
	return nil
}

// UpsertBan writes a permanent ban record
func (r *ModerationRepository) UpsertBan(ban *models.BanRecord) error {
	query := `
		INSERT INTO bans (user_id, username, banned_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET username = $2, banned_at = $3
	`

	_, err := r.db.Exec(query, ban.UserID, ban.Username, ban.BannedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert ban: %w", err)
	}
	return nil
}

// GetBan returns the user's ban record, or nil if there is none
func (r *ModerationRepository) GetBan(userID uuid.UUID) (*models.BanRecord, error) {
	query := `SELECT user_id, username, banned_at FROM bans WHERE user_id = $1`

	ban := &models.BanRecord{}
	err := r.db.QueryRow(query, userID).Scan(&ban.UserID, &ban.Username, &ban.BannedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ban: %w", err)
	}
	return ban, nil
}

// DeleteBan removes a ban record. Idempotent.
func (r *ModerationRepository) DeleteBan(userID uuid.UUID) error {
	query := `DELETE FROM bans WHERE user_id = $1`
	if _, err := r.db.Exec(query, userID); err != nil {
		return fmt.Errorf("failed to delete ban: %w", err)
	}
	return nil
}

// UpsertModerator writes a moderator registry entry
func (r *ModerationRepository) UpsertModerator(entry *models.ModeratorEntry) error {
	query := `
		INSERT INTO moderators (user_id, username, added_by, added_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET username = $2, added_by = $3, added_at = $4
	`

	_, err := r.db.Exec(query, entry.UserID, entry.Username, entry.AddedBy, entry.AddedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert moderator: %w", err)
	}
	return nil
}

// GetModerator returns the registry entry for a user, or nil if there is none
func (r *ModerationRepository) GetModerator(userID uuid.UUID) (*models.ModeratorEntry, error) {
	query := `SELECT user_id, username, added_by, added_at FROM moderators WHERE user_id = $1`

	entry := &models.ModeratorEntry{}
	err := r.db.QueryRow(query, userID).Scan(&entry.UserID, &entry.Username, &entry.AddedBy, &entry.AddedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get moderator: %w", err)
	}
	return entry, nil
}

// DeleteModerator removes a registry entry. Idempotent.
func (r *ModerationRepository) DeleteModerator(userID uuid.UUID) error {
	query := `DELETE FROM moderators WHERE user_id = $1`
	if _, err := r.db.Exec(query, userID); err != nil {
		return fmt.Errorf("failed to delete moderator: %w", err)
	}
	return nil
}

// ListModerators returns all registry entries
func (r *ModerationRepository) ListModerators() ([]models.ModeratorEntry, error) {
	query := `SELECT user_id, username, added_by, added_at FROM moderators`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list moderators: %w", err)
	}
	defer rows.Close()

	entries := []models.ModeratorEntry{}
	for rows.Next() {
		var entry models.ModeratorEntry
		if err := rows.Scan(&entry.UserID, &entry.Username, &entry.AddedBy, &entry.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan moderator: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
