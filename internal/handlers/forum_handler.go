package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GianniRod/Real-Futbol/internal/forum"
	"github.com/GianniRod/Real-Futbol/internal/models"
)

// ForumHandler exposes the one-shot HTTP surface over the forum engine: a
// feed snapshot plus the message and reaction writes. Live delivery is the
// WebSocket handler's job.
type ForumHandler struct {
	deps forum.Deps
}

func NewForumHandler(deps forum.Deps) *ForumHandler {
	return &ForumHandler{deps: deps}
}

// engineFor builds a per-request engine. HTTP requests never open live
// subscriptions, so these engines are cheap and need no Close.
func (h *ForumHandler) engineFor(c *gin.Context) *forum.Engine {
	uid := uuid.Nil
	if v, ok := c.Get("user_id"); ok {
		uid = v.(uuid.UUID)
	}
	return forum.NewEngine(h.deps, uid, nil)
}

// GetFeed returns the current visible feed of a context with reaction
// aggregates, ordered oldest first
func (h *ForumHandler) GetFeed(c *gin.Context) {
	forumContext := c.Param("context")
	if forumContext == "" {
		ErrorResponse(c, http.StatusBadRequest, "context required")
		return
	}

	uid := uuid.Nil
	if v, ok := c.Get("user_id"); ok {
		uid = v.(uuid.UUID)
	}

	snapshot, err := h.deps.Messages.GetByContext(forumContext)
	if err != nil {
		ErrorResponse(c, http.StatusBadGateway, "Failed to get messages")
		return
	}

	visible := forum.VisibleMessages(snapshot)
	watched := forum.WatchedIDs(visible, h.deps.MaxWatchedMessages)

	aggregates := map[uuid.UUID]models.ReactionSummary{}
	if len(watched) > 0 {
		reactions, err := h.deps.Reactions.GetByMessageIDs(watched)
		if err != nil {
			ErrorResponse(c, http.StatusBadGateway, "Failed to get reactions")
			return
		}
		aggregates = forum.Aggregate(reactions, uid)
	}

	views := make([]forum.MessageView, 0, len(visible))
	for _, msg := range visible {
		views = append(views, forum.MessageView{
			Message:   msg,
			Reactions: aggregates[msg.ID],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"context":  forumContext,
		"messages": views,
	})
}

// PostMessage posts one message into a context
func (h *ForumHandler) PostMessage(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := h.engineFor(c).Send(req.Context, req.Body)
	if err != nil {
		ForumErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// React toggles the caller's reaction on a message
func (h *ForumHandler) React(c *gin.Context) {
	var req models.ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.engineFor(c).React(req.MessageID, req.Type); err != nil {
		ForumErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DeleteMessage soft-deletes a message, moderators and the developer only
func (h *ForumHandler) DeleteMessage(c *gin.Context) {
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid message id")
		return
	}

	if err := h.engineFor(c).Delete(messageID); err != nil {
		ForumErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
