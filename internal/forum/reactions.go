package forum

import (
	"github.com/google/uuid"

	"github.com/GianniRod/Real-Futbol/internal/models"
)

// Aggregate recomputes per-message reaction summaries from a full reaction
// snapshot. Counts always start from zero, so duplicate snapshot delivery is
// idempotent. Messages with no reactions are simply absent; readers fall back
// to the zero ReactionSummary.
func Aggregate(snapshot []models.Reaction, viewerID uuid.UUID) map[uuid.UUID]models.ReactionSummary {
	summaries := make(map[uuid.UUID]models.ReactionSummary)
	for _, reaction := range snapshot {
		summary := summaries[reaction.MessageID]

		switch reaction.Type {
		case models.ReactionLike:
			summary.Likes++
			if reaction.UserID == viewerID {
				summary.ViewerLike = true
			}
		case models.ReactionDislike:
			summary.Dislikes++
			if reaction.UserID == viewerID {
				summary.ViewerDislike = true
			}
		}

		summaries[reaction.MessageID] = summary
	}
	return summaries
}
