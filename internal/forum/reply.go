package forum

import (
	"github.com/google/uuid"

	"github.com/GianniRod/Real-Futbol/internal/models"
)

// replyExcerptLimit caps the quoted text copied into a reply reference.
const replyExcerptLimit = 100

// replySlot holds at most one pending "replying to" reference. Last writer
// wins; the slot is cleared on cancel or immediately after a successful send.
// Callers synchronize access through the engine mutex.
type replySlot struct {
	pending *models.ReplyRef
}

func (s *replySlot) start(messageID uuid.UUID, authorName, body string) {
	s.pending = &models.ReplyRef{
		MessageID:  messageID,
		AuthorName: authorName,
		Excerpt:    excerpt(body, replyExcerptLimit),
	}
}

func (s *replySlot) cancel() {
	s.pending = nil
}

// take returns the pending reference and clears the slot
func (s *replySlot) take() *models.ReplyRef {
	ref := s.pending
	s.pending = nil
	return ref
}

func (s *replySlot) current() *models.ReplyRef {
	return s.pending
}

// excerpt truncates by runes so a multibyte body never splits mid-character
func excerpt(body string, limit int) string {
	runes := []rune(body)
	if len(runes) <= limit {
		return body
	}
	return string(runes[:limit])
}
