package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GlobalContext is the forum context shared by every match day.
const GlobalContext = "global"

// MatchContext returns the forum context for a single fixture.
func MatchContext(matchID string) string {
	return fmt.Sprintf("match_%s", matchID)
}

// ReplyRef is an immutable quote of another message, captured when the reply
// was started. It never tracks later edits or deletions of the quoted message.
type ReplyRef struct {
	MessageID  uuid.UUID `json:"message_id" db:"reply_to_id"`
	AuthorName string    `json:"author_name" db:"reply_to_author"`
	Excerpt    string    `json:"excerpt" db:"reply_to_excerpt"`
}

type Message struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Context    string     `json:"context" db:"context"`
	AuthorID   uuid.UUID  `json:"author_id" db:"author_id"`
	AuthorName string     `json:"author_name" db:"author_name"`
	AuthorRole string     `json:"author_role" db:"author_role"`
	Body       string     `json:"body" db:"body"`
	ReplyTo    *ReplyRef  `json:"reply_to,omitempty"`
	Deleted    bool       `json:"deleted" db:"deleted"`
	DeletedBy  *uuid.UUID `json:"deleted_by,omitempty" db:"deleted_by"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

type SendMessageRequest struct {
	Context string `json:"context" binding:"required"`
	Body    string `json:"body" binding:"required,max=500"`
}

type StartReplyRequest struct {
	MessageID uuid.UUID `json:"message_id" binding:"required"`
}
