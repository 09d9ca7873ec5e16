package forum

import (
	"time"

	"github.com/google/uuid"

	"github.com/GianniRod/Real-Futbol/internal/models"
)

// The engine consumes the document store through these narrow interfaces.
// The repository package provides the production implementations; tests use
// in-memory fakes.

type MessageStore interface {
	Create(message *models.Message) error
	GetByID(id uuid.UUID) (*models.Message, error)
	GetByContext(context string) ([]models.Message, error)
	SoftDelete(id, deletedBy uuid.UUID, deletedAt time.Time) error
}

type ReactionStore interface {
	Create(reaction *models.Reaction) error
	GetByMessageAndUser(messageID, userID uuid.UUID) (*models.Reaction, error)
	GetByMessageIDs(ids []uuid.UUID) ([]models.Reaction, error)
	UpdateType(id uuid.UUID, reactionType models.ReactionType) error
	Delete(id uuid.UUID) error
}

type UserDirectory interface {
	GetByID(id uuid.UUID) (*models.UserProfile, error)
	List() ([]models.UserProfile, error)
	UpdateRole(id uuid.UUID, role string) error
	IncrementCommentCount(id uuid.UUID) error
}

type ModerationStore interface {
	ModeratorLookup
	UpsertMute(mute *models.MuteRecord) error
	GetMute(userID uuid.UUID) (*models.MuteRecord, error)
	DeleteMute(userID uuid.UUID) error
	UpsertBan(ban *models.BanRecord) error
	GetBan(userID uuid.UUID) (*models.BanRecord, error)
	DeleteBan(userID uuid.UUID) error
	UpsertModerator(entry *models.ModeratorEntry) error
	DeleteModerator(userID uuid.UUID) error
	ListModerators() ([]models.ModeratorEntry, error)
}
