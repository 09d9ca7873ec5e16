package forum

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GianniRod/Real-Futbol/internal/models"
)

func TestSendStoresMessage(t *testing.T) {
	w := newWorld()
	viewer := w.users.add("Dibu")
	engine := NewEngine(w.deps(), viewer, nil)

	msg, err := engine.Send(models.GlobalContext, "  vamos  ")
	require.NoError(t, err)

	assert.Equal(t, "vamos", msg.Body)
	assert.Equal(t, models.GlobalContext, msg.Context)
	assert.Equal(t, viewer, msg.AuthorID)
	assert.Equal(t, "Dibu", msg.AuthorName)
	assert.Equal(t, string(RoleUser), msg.AuthorRole)
	assert.Nil(t, msg.ReplyTo)

	stored, err := w.messages.GetByID(msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "vamos", stored.Body)

	profile, err := w.users.GetByID(viewer)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.CommentCount)
}

func TestSendStampsModeratorRole(t *testing.T) {
	w := newWorld()
	mod := w.addModerator("TataMartino")
	engine := NewEngine(w.deps(), mod, nil)

	msg, err := engine.Send(models.GlobalContext, "calma")
	require.NoError(t, err)
	assert.Equal(t, string(RoleModerator), msg.AuthorRole)
}

func TestSendValidation(t *testing.T) {
	w := newWorld()
	viewer := w.users.add("Dibu")
	engine := NewEngine(w.deps(), viewer, nil)

	_, err := engine.Send(models.GlobalContext, "   ")
	assert.ErrorIs(t, err, ErrInvalidOperation)

	_, err = engine.Send(models.GlobalContext, strings.Repeat("a", 501))
	assert.ErrorIs(t, err, ErrInvalidOperation)

	// exactly at the limit is fine
	_, err = engine.Send(models.GlobalContext, strings.Repeat("ñ", 500))
	assert.NoError(t, err)

	// no open channel and no explicit context
	_, err = engine.Send("", "hola")
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestSendRequiresAuthentication(t *testing.T) {
	w := newWorld()
	engine := NewEngine(w.deps(), uuid.Nil, nil)

	_, err := engine.Send(models.GlobalContext, "hola")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSendBlockedWhenMutedOrBanned(t *testing.T) {
	w := newWorld()
	viewer := w.users.add("Hincha")
	engine := NewEngine(w.deps(), viewer, nil)

	require.NoError(t, w.mod.MuteUser("Hincha", 30, w.developer))
	_, err := engine.Send(models.GlobalContext, "hola")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, w.mod.UnmuteUser(viewer, w.developer))
	require.NoError(t, w.mod.BanUser("Hincha", w.developer))
	_, err = engine.Send(models.GlobalContext, "hola")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestSendCapturesAndClearsPendingReply(t *testing.T) {
	w := newWorld()
	author := w.users.add("Leo")
	viewer := w.users.add("Dibu")

	quoted := &models.Message{
		ID:         uuid.New(),
		Context:    models.GlobalContext,
		AuthorID:   author,
		AuthorName: "Leo",
		Body:       "qué partido",
	}
	require.NoError(t, w.messages.Create(quoted))

	engine := NewEngine(w.deps(), viewer, nil)
	require.NoError(t, engine.StartReplyByID(quoted.ID))

	pending := engine.PendingReply()
	require.NotNil(t, pending)
	assert.Equal(t, quoted.ID, pending.MessageID)
	assert.Equal(t, "Leo", pending.AuthorName)
	assert.Equal(t, "qué partido", pending.Excerpt)

	msg, err := engine.Send(models.GlobalContext, "tremendo")
	require.NoError(t, err)
	require.NotNil(t, msg.ReplyTo)
	assert.Equal(t, quoted.ID, msg.ReplyTo.MessageID)

	// slot clears after the send; the next message is not a reply
	assert.Nil(t, engine.PendingReply())
	next, err := engine.Send(models.GlobalContext, "otro más")
	require.NoError(t, err)
	assert.Nil(t, next.ReplyTo)
}

func TestCancelReplyBeforeSend(t *testing.T) {
	w := newWorld()
	viewer := w.users.add("Dibu")
	engine := NewEngine(w.deps(), viewer, nil)

	engine.StartReply(uuid.New(), "Leo", "hola")
	engine.CancelReply()

	msg, err := engine.Send(models.GlobalContext, "sin cita")
	require.NoError(t, err)
	assert.Nil(t, msg.ReplyTo)
}

func TestSendFailureKeepsPendingReply(t *testing.T) {
	w := newWorld()
	viewer := w.users.add("Dibu")
	engine := NewEngine(w.deps(), viewer, nil)

	engine.StartReply(uuid.New(), "Leo", "hola")

	w.messages.fail = true
	_, err := engine.Send(models.GlobalContext, "no llega")
	require.ErrorIs(t, err, ErrUpstreamUnavailable)

	assert.NotNil(t, engine.PendingReply(), "a failed send must not consume the reply")
}

func TestSinkReceivesReplyUpdates(t *testing.T) {
	w := newWorld()
	viewer := w.users.add("Dibu")

	var views []View
	engine := NewEngine(w.deps(), viewer, func(v View) {
		views = append(views, v)
	})

	engine.StartReply(uuid.New(), "Leo", "hola")
	require.NotEmpty(t, views)
	assert.NotNil(t, views[len(views)-1].Reply)

	engine.CancelReply()
	assert.Nil(t, views[len(views)-1].Reply)
}

func TestNewEngineClampsWatchBound(t *testing.T) {
	w := newWorld()
	deps := w.deps()
	deps.MaxWatchedMessages = 50
	engine := NewEngine(deps, uuid.Nil, nil)
	assert.Equal(t, 10, engine.deps.MaxWatchedMessages)

	deps.MaxWatchedMessages = 0
	engine = NewEngine(deps, uuid.Nil, nil)
	assert.Equal(t, 10, engine.deps.MaxWatchedMessages)
}

func TestSnapshotViewerRole(t *testing.T) {
	w := newWorld()
	engine := NewEngine(w.deps(), w.developer, nil)

	view := engine.Snapshot()
	assert.Equal(t, RoleDeveloper, view.ViewerRole)
	assert.False(t, view.Delivered)
	assert.Empty(t, view.Messages)
}

func TestModerationPassthroughRequiresAuth(t *testing.T) {
	w := newWorld()
	engine := NewEngine(w.deps(), uuid.Nil, nil)

	assert.ErrorIs(t, engine.Delete(uuid.New()), ErrUnauthenticated)
	assert.ErrorIs(t, engine.Mute("Hincha", 5), ErrUnauthenticated)
	assert.ErrorIs(t, engine.Ban("Hincha"), ErrUnauthenticated)
	assert.ErrorIs(t, engine.AddModerator(uuid.New()), ErrUnauthenticated)
	assert.ErrorIs(t, engine.RemoveModerator(uuid.New()), ErrUnauthenticated)
}
