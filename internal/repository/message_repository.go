package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/GianniRod/Real-Futbol/internal/database"
	"github.com/GianniRod/Real-Futbol/internal/models"
)

type MessageRepository struct {
	db *database.DB
}

func NewMessageRepository(db *database.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message
func (r *MessageRepository) Create(message *models.Message) error {
	var replyID *uuid.UUID
	var replyAuthor, replyExcerpt *string
	if message.ReplyTo != nil {
		replyID = &message.ReplyTo.MessageID
		replyAuthor = &message.ReplyTo.AuthorName
		replyExcerpt = &message.ReplyTo.Excerpt
	}

	query := `
		INSERT INTO messages (id, context, author_id, author_name, author_role, body,
			reply_to_id, reply_to_author, reply_to_excerpt, deleted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, $10)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		query,
		message.ID,
		message.Context,
		message.AuthorID,
		message.AuthorName,
		message.AuthorRole,
		message.Body,
		replyID,
		replyAuthor,
		replyExcerpt,
		message.CreatedAt,
	).Scan(&message.ID, &message.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// GetByID retrieves a message by ID, including soft-deleted ones so the
// audit fields stay resolvable
func (r *MessageRepository) GetByID(id uuid.UUID) (*models.Message, error) {
	query := `
		SELECT id, context, author_id, author_name, author_role, body,
		       reply_to_id, reply_to_author, reply_to_excerpt,
		       deleted, deleted_by, deleted_at, created_at
		FROM messages
		WHERE id = $1
	`

	message, err := scanMessage(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("message not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return message, nil
}

// GetByContext retrieves the full message set of one forum context. The
// result is the live-query snapshot; deleted-filtering and ordering are the
// engine's job.
func (r *MessageRepository) GetByContext(context string) ([]models.Message, error) {
	query := `
		SELECT id, context, author_id, author_name, author_role, body,
		       reply_to_id, reply_to_author, reply_to_excerpt,
		       deleted, deleted_by, deleted_at, created_at
		FROM messages
		WHERE context = $1
	`

	rows, err := r.db.Query(query, context)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, *msg)
	}

	return messages, nil
}

// SoftDelete marks a message deleted without removing the row
func (r *MessageRepository) SoftDelete(id, deletedBy uuid.UUID, deletedAt time.Time) error {
	query := `
		UPDATE messages
		SET deleted = true, deleted_by = $2, deleted_at = $3
		WHERE id = $1
	`

	result, err := r.db.Exec(query, id, deletedBy, deletedAt)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("message not found")
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMessage(row rowScanner) (*models.Message, error) {
	msg := &models.Message{}
	var replyID *uuid.UUID
	var replyAuthor, replyExcerpt *string

	err := row.Scan(
		&msg.ID,
		&msg.Context,
		&msg.AuthorID,
		&msg.AuthorName,
		&msg.AuthorRole,
		&msg.Body,
		&replyID,
		&replyAuthor,
		&replyExcerpt,
		&msg.Deleted,
		&msg.DeletedBy,
		&msg.DeletedAt,
		&msg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if replyID != nil {
		msg.ReplyTo = &models.ReplyRef{MessageID: *replyID}
		if replyAuthor != nil {
			msg.ReplyTo.AuthorName = *replyAuthor
		}
		if replyExcerpt != nil {
			msg.ReplyTo.Excerpt = *replyExcerpt
		}
	}

	return msg, nil
}
