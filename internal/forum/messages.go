package forum

import (
	"sort"

	"github.com/google/uuid"

	"github.com/GianniRod/Real-Futbol/internal/models"
)

// MessageView joins a message with its reaction aggregate for the view layer.
type MessageView struct {
	models.Message
	Reactions models.ReactionSummary `json:"reactions"`
}

// VisibleMessages turns a raw snapshot into the sequence handed to clients:
// soft-deleted messages drop out and the rest sort by creation time
// ascending. The sort is stable, so ties keep their snapshot order within a
// single delivery.
func VisibleMessages(snapshot []models.Message) []models.Message {
	visible := make([]models.Message, 0, len(snapshot))
	for _, msg := range snapshot {
		if msg.Deleted {
			continue
		}
		visible = append(visible, msg)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].CreatedAt.Before(visible[j].CreatedAt)
	})

	return visible
}

// WatchedIDs returns the message ids the reaction feed may watch, truncated
// to the store's IN-filter bound. Ids beyond the bound keep zero aggregates;
// that truncation is a documented upstream limitation, not silent data loss.
func WatchedIDs(visible []models.Message, max int) []uuid.UUID {
	if max <= 0 {
		return nil
	}
	n := len(visible)
	if n > max {
		n = max
	}

	ids := make([]uuid.UUID, 0, n)
	for _, msg := range visible[:n] {
		ids = append(ids, msg.ID)
	}
	return ids
}
