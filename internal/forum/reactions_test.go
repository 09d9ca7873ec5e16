package forum

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GianniRod/Real-Futbol/internal/models"
)

func TestAggregateCountsAndViewerFlags(t *testing.T) {
	msgA := uuid.New()
	msgB := uuid.New()
	viewer := uuid.New()
	other := uuid.New()

	snapshot := []models.Reaction{
		{ID: uuid.New(), MessageID: msgA, UserID: viewer, Type: models.ReactionLike},
		{ID: uuid.New(), MessageID: msgA, UserID: other, Type: models.ReactionLike},
		{ID: uuid.New(), MessageID: msgA, UserID: uuid.New(), Type: models.ReactionDislike},
		{ID: uuid.New(), MessageID: msgB, UserID: other, Type: models.ReactionDislike},
	}

	summaries := Aggregate(snapshot, viewer)

	a := summaries[msgA]
	assert.Equal(t, 2, a.Likes)
	assert.Equal(t, 1, a.Dislikes)
	assert.True(t, a.ViewerLike)
	assert.False(t, a.ViewerDislike)

	b := summaries[msgB]
	assert.Equal(t, 1, b.Dislikes)
	assert.False(t, b.ViewerDislike)
}

func TestAggregateMissingMessageIsZero(t *testing.T) {
	summaries := Aggregate(nil, uuid.New())
	summary := summaries[uuid.New()]
	assert.Zero(t, summary.Likes)
	assert.Zero(t, summary.Dislikes)
}

func TestAggregateIdempotentOnResnapshot(t *testing.T) {
	msg := uuid.New()
	viewer := uuid.New()
	snapshot := []models.Reaction{
		{ID: uuid.New(), MessageID: msg, UserID: viewer, Type: models.ReactionLike},
	}

	first := Aggregate(snapshot, viewer)
	second := Aggregate(snapshot, viewer)
	assert.Equal(t, first[msg], second[msg])
}

// Toggling through the engine must leave at most one reaction row per
// (message, user) no matter the sequence.
func TestReactToggleSequences(t *testing.T) {
	w := newWorld()
	viewer := w.users.add("Dibu")
	author := w.users.add("Leo")

	msg := &models.Message{
		ID:       uuid.New(),
		Context:  models.GlobalContext,
		AuthorID: author,
		Body:     "golazo",
	}
	require.NoError(t, w.messages.Create(msg))

	engine := NewEngine(w.deps(), viewer, nil)

	// odd number of same-type toggles leaves one row
	for i := 0; i < 3; i++ {
		require.NoError(t, engine.React(msg.ID, models.ReactionLike))
	}
	assert.Equal(t, 1, w.reactions.count())

	r, err := w.reactions.GetByMessageAndUser(msg.ID, viewer)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, models.ReactionLike, r.Type)

	// opposite type flips the same row in place
	require.NoError(t, engine.React(msg.ID, models.ReactionDislike))
	assert.Equal(t, 1, w.reactions.count())

	r, err = w.reactions.GetByMessageAndUser(msg.ID, viewer)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, models.ReactionDislike, r.Type)

	// even count clears the row
	require.NoError(t, engine.React(msg.ID, models.ReactionDislike))
	assert.Equal(t, 0, w.reactions.count())
}

func TestReactRequiresAuthentication(t *testing.T) {
	w := newWorld()
	engine := NewEngine(w.deps(), uuid.Nil, nil)

	err := engine.React(uuid.New(), models.ReactionLike)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestReactRejectsUnknownType(t *testing.T) {
	w := newWorld()
	viewer := w.users.add("Dibu")
	engine := NewEngine(w.deps(), viewer, nil)

	err := engine.React(uuid.New(), models.ReactionType("love"))
	assert.ErrorIs(t, err, ErrInvalidOperation)
}
