package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/GianniRod/Real-Futbol/internal/database"
	"github.com/GianniRod/Real-Futbol/internal/models"
	"github.com/GianniRod/Real-Futbol/internal/store"
)

type ReactionRepository struct {
	db *database.DB
}

func NewReactionRepository(db *database.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// Create inserts a new reaction
func (r *ReactionRepository) Create(reaction *models.Reaction) error {
	query := `
		INSERT INTO reactions (id, message_id, user_id, type, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(
		query,
		reaction.ID,
		reaction.MessageID,
		reaction.UserID,
		reaction.Type,
		reaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reaction: %w", err)
	}

	return nil
}

// GetByMessageAndUser returns the user's reaction on a message, or nil if
// there is none
func (r *ReactionRepository) GetByMessageAndUser(messageID, userID uuid.UUID) (*models.Reaction, error) {
	query := `
		SELECT id, message_id, user_id, type, created_at
		FROM reactions
		WHERE message_id = $1 AND user_id = $2
	`

	reaction := &models.Reaction{}
	err := r.db.QueryRow(query, messageID, userID).Scan(
		&reaction.ID,
		&reaction.MessageID,
		&reaction.UserID,
		&reaction.Type,
		&reaction.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reaction: %w", err)
	}

	return reaction, nil
}

// GetByMessageIDs returns every reaction on the given messages. The id set
// must respect the store's IN-filter bound.
func (r *ReactionRepository) GetByMessageIDs(ids []uuid.UUID) ([]models.Reaction, error) {
	if len(ids) == 0 {
		return []models.Reaction{}, nil
	}
	if len(ids) > store.MaxInValues {
		return nil, fmt.Errorf("IN filter accepts at most %d values, got %d", store.MaxInValues, len(ids))
	}

	query := `
		SELECT id, message_id, user_id, type, created_at
		FROM reactions
		WHERE message_id = ANY($1)
	`

	rows, err := r.db.Query(query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get reactions: %w", err)
	}
	defer rows.Close()

	reactions := []models.Reaction{}
	for rows.Next() {
		var reaction models.Reaction
		err := rows.Scan(
			&reaction.ID,
			&reaction.MessageID,
			&reaction.UserID,
			&reaction.Type,
			&reaction.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reaction: %w", err)
		}
		reactions = append(reactions, reaction)
	}

	return reactions, nil
}

// UpdateType flips an existing reaction to the other type in place
func (r *ReactionRepository) UpdateType(id uuid.UUID, reactionType models.ReactionType) error {
	query := `UPDATE reactions SET type = $2 WHERE id = $1`

	result, err := r.db.Exec(query, id, reactionType)
	if err != nil {
		return fmt.Errorf("failed to update reaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("reaction not found")
	}

	return nil
}

// Delete removes a reaction
func (r *ReactionRepository) Delete(id uuid.UUID) error {
	query := `DELETE FROM reactions WHERE id = $1`

	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete reaction: %w", err)
	}

	return nil
}
