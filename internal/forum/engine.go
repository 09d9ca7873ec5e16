package forum

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GianniRod/Real-Futbol/internal/models"
	"github.com/GianniRod/Real-Futbol/internal/store"
)

// View is the joined state pushed to the view layer: the ordered,
// deleted-filtered messages with their reaction aggregates, the pending
// reply and the viewer's resolved role. Delivered distinguishes "no messages
// yet" from "channel not yet delivered".
type View struct {
	Context    string           `json:"context"`
	Delivered  bool             `json:"delivered"`
	Messages   []MessageView    `json:"messages"`
	Reply      *models.ReplyRef `json:"reply,omitempty"`
	ViewerRole Role             `json:"viewer_role"`
}

// ViewSink receives every recomputed view. It is called with the engine lock
// held and must not call back into the engine.
type ViewSink func(View)

// Deps bundles the engine's collaborators. Live may be nil, in which case
// subscriptions are unavailable and writes skip change notification.
type Deps struct {
	Messages   MessageStore
	Reactions  ReactionStore
	Users      UserDirectory
	Moderation *Moderation
	Resolver   *Resolver
	Live       *store.Live

	MaxWatchedMessages int
	MaxMessageLength   int
}

// Engine is one view's forum instance: it owns the single active
// subscription pair, the reply slot and the derived view state. Construct on
// view mount, Close on unmount. A nil viewer id means the viewer is
// unauthenticated and may only read.
type Engine struct {
	deps   Deps
	viewer uuid.UUID
	sink   ViewSink

	mu              sync.Mutex
	generation      int
	reactGeneration int
	context         string
	msgSub          *store.Subscription
	reactSub        *store.Subscription

	reply      replySlot
	delivered  bool
	visible    []models.Message
	watched    []uuid.UUID
	aggregates map[uuid.UUID]models.ReactionSummary
}

func NewEngine(deps Deps, viewerID uuid.UUID, sink ViewSink) *Engine {
	if deps.MaxWatchedMessages <= 0 {
		deps.MaxWatchedMessages = store.MaxInValues
	}
	if deps.MaxMessageLength <= 0 {
		deps.MaxMessageLength = 500
	}
	if deps.MaxWatchedMessages > store.MaxInValues {
		// the upstream IN filter is the hard bound
		deps.MaxWatchedMessages = store.MaxInValues
	}
	return &Engine{
		deps:       deps,
		viewer:     viewerID,
		sink:       sink,
		aggregates: make(map[uuid.UUID]models.ReactionSummary),
	}
}

// Viewer returns the viewer id bound to this engine
func (e *Engine) Viewer() uuid.UUID {
	return e.viewer
}

// Context returns the active forum context, or "" when closed
func (e *Engine) Context() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.context
}

// ViewerRole resolves the viewer's role
func (e *Engine) ViewerRole() Role {
	return e.deps.Resolver.Resolve(e.viewer)
}

// Send posts a message to a forum context. The pending reply, if any, is
// copied onto the message and cleared only after the write succeeds.
func (e *Engine) Send(forumContext, body string) (*models.Message, error) {
	if e.viewer == uuid.Nil {
		return nil, fmt.Errorf("send: %w", ErrUnauthenticated)
	}
	if forumContext == "" {
		forumContext = e.Context()
	}
	if forumContext == "" {
		return nil, fmt.Errorf("send: no forum context: %w", ErrInvalidOperation)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("send: empty body: %w", ErrInvalidOperation)
	}
	if len([]rune(body)) > e.deps.MaxMessageLength {
		return nil, fmt.Errorf("send: body exceeds %d characters: %w", e.deps.MaxMessageLength, ErrInvalidOperation)
	}

	// restriction checks degrade open on store errors, but a known ban or
	// mute blocks the post
	if e.deps.Moderation.IsBanned(e.viewer) {
		return nil, fmt.Errorf("send: user is banned: %w", ErrPermissionDenied)
	}
	if e.deps.Moderation.IsMuted(e.viewer) {
		return nil, fmt.Errorf("send: user is muted: %w", ErrPermissionDenied)
	}

	profile, err := e.deps.Users.GetByID(e.viewer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	e.mu.Lock()
	replyRef := e.reply.current()
	e.mu.Unlock()

	msg := &models.Message{
		ID:         uuid.New(),
		Context:    forumContext,
		AuthorID:   e.viewer,
		AuthorName: profile.Username,
		AuthorRole: string(e.deps.Resolver.Resolve(e.viewer)),
		Body:       body,
		ReplyTo:    replyRef,
		CreatedAt:  time.Now(),
	}

	if err := e.deps.Messages.Create(msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	e.mu.Lock()
	e.reply.cancel()
	e.emitLocked()
	e.mu.Unlock()

	if err := e.deps.Users.IncrementCommentCount(e.viewer); err != nil {
		log.Printf("failed to increment comment count for %s: %v", e.viewer, err)
	}

	e.notify(store.MessagesChannel(forumContext))
	return msg, nil
}

// StartReply arms the reply slot with an immutable excerpt of the quoted
// message. Replaces any prior pending reply.
func (e *Engine) StartReply(messageID uuid.UUID, authorName, body string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reply.start(messageID, authorName, body)
	e.emitLocked()
}

// StartReplyByID looks the quoted message up and arms the reply slot
func (e *Engine) StartReplyByID(messageID uuid.UUID) error {
	msg, err := e.deps.Messages.GetByID(messageID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	e.StartReply(msg.ID, msg.AuthorName, msg.Body)
	return nil
}

// CancelReply clears the pending reply unconditionally
func (e *Engine) CancelReply() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reply.cancel()
	e.emitLocked()
}

// PendingReply returns the armed reply reference, or nil
func (e *Engine) PendingReply() *models.ReplyRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reply.current()
}

// React toggles the viewer's reaction on a message: none creates, same type
// removes, the other type updates in place. At most one reaction row per
// (message, user) survives any call sequence.
func (e *Engine) React(messageID uuid.UUID, reactionType models.ReactionType) error {
	if e.viewer == uuid.Nil {
		return fmt.Errorf("react: %w", ErrUnauthenticated)
	}
	if !reactionType.IsValid() {
		return fmt.Errorf("react: unknown type %q: %w", reactionType, ErrInvalidOperation)
	}

	msg, err := e.deps.Messages.GetByID(messageID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	existing, err := e.deps.Reactions.GetByMessageAndUser(messageID, e.viewer)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	switch {
	case existing == nil:
		reaction := &models.Reaction{
			ID:        uuid.New(),
			MessageID: messageID,
			UserID:    e.viewer,
			Type:      reactionType,
			CreatedAt: time.Now(),
		}
		err = e.deps.Reactions.Create(reaction)
	case existing.Type == reactionType:
		err = e.deps.Reactions.Delete(existing.ID)
	default:
		err = e.deps.Reactions.UpdateType(existing.ID, reactionType)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	e.notify(store.ReactionsChannel(msg.Context))
	return nil
}

// Delete soft-deletes a message through the moderation policy engine
func (e *Engine) Delete(messageID uuid.UUID) error {
	if e.viewer == uuid.Nil {
		return fmt.Errorf("delete: %w", ErrUnauthenticated)
	}
	return e.deps.Moderation.DeleteMessage(messageID, e.viewer)
}

// Mute silences a user by username for the given duration
func (e *Engine) Mute(username string, durationMinutes int) error {
	if e.viewer == uuid.Nil {
		return fmt.Errorf("mute: %w", ErrUnauthenticated)
	}
	return e.deps.Moderation.MuteUser(username, durationMinutes, e.viewer)
}

// Unmute lifts a mute
func (e *Engine) Unmute(userID uuid.UUID) error {
	if e.viewer == uuid.Nil {
		return fmt.Errorf("unmute: %w", ErrUnauthenticated)
	}
	return e.deps.Moderation.UnmuteUser(userID, e.viewer)
}

// Ban permanently bans a user by username
func (e *Engine) Ban(username string) error {
	if e.viewer == uuid.Nil {
		return fmt.Errorf("ban: %w", ErrUnauthenticated)
	}
	return e.deps.Moderation.BanUser(username, e.viewer)
}

// Unban lifts a ban
func (e *Engine) Unban(userID uuid.UUID) error {
	if e.viewer == uuid.Nil {
		return fmt.Errorf("unban: %w", ErrUnauthenticated)
	}
	return e.deps.Moderation.UnbanUser(userID, e.viewer)
}

// AddModerator registers a moderator (developer only)
func (e *Engine) AddModerator(userID uuid.UUID) error {
	if e.viewer == uuid.Nil {
		return fmt.Errorf("add moderator: %w", ErrUnauthenticated)
	}
	return e.deps.Moderation.AddModerator(userID, e.viewer)
}

// RemoveModerator removes a moderator (developer only)
func (e *Engine) RemoveModerator(userID uuid.UUID) error {
	if e.viewer == uuid.Nil {
		return fmt.Errorf("remove moderator: %w", ErrUnauthenticated)
	}
	return e.deps.Moderation.RemoveModerator(userID, e.viewer)
}

// Snapshot builds the current view without waiting for a live delivery
func (e *Engine) Snapshot() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buildViewLocked()
}

func (e *Engine) buildViewLocked() View {
	views := make([]MessageView, 0, len(e.visible))
	for _, msg := range e.visible {
		views = append(views, MessageView{
			Message:   msg,
			Reactions: e.aggregates[msg.ID],
		})
	}
	return View{
		Context:    e.context,
		Delivered:  e.delivered,
		Messages:   views,
		Reply:      e.reply.current(),
		ViewerRole: e.deps.Resolver.Resolve(e.viewer),
	}
}

func (e *Engine) emitLocked() {
	if e.sink == nil {
		return
	}
	e.sink(e.buildViewLocked())
}

func (e *Engine) notify(collection string) {
	if e.deps.Live == nil {
		return
	}
	if err := e.deps.Live.NotifyChanged(collection); err != nil {
		log.Printf("failed to notify %s: %v", collection, err)
	}
}
