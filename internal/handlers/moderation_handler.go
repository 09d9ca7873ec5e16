package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GianniRod/Real-Futbol/internal/forum"
	"github.com/GianniRod/Real-Futbol/internal/models"
)

// ModerationHandler exposes mute, ban and moderator registry management.
// Permission checks live in the policy engine; the handler only translates
// HTTP into engine calls.
type ModerationHandler struct {
	moderation *forum.Moderation
}

func NewModerationHandler(moderation *forum.Moderation) *ModerationHandler {
	return &ModerationHandler{moderation: moderation}
}

func actingUser(c *gin.Context) uuid.UUID {
	if v, ok := c.Get("user_id"); ok {
		return v.(uuid.UUID)
	}
	return uuid.Nil
}

// MuteUser silences a user by username for a number of minutes
func (h *ModerationHandler) MuteUser(c *gin.Context) {
	var req models.MuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.moderation.MuteUser(req.Username, req.DurationMinutes, actingUser(c)); err != nil {
		ForumErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "muted"})
}

// UnmuteUser lifts a mute by user id
func (h *ModerationHandler) UnmuteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.moderation.UnmuteUser(userID, actingUser(c)); err != nil {
		ForumErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "unmuted"})
}

// MuteStatus reports whether a user is muted and the remaining time in the
// product's display format
func (h *ModerationHandler) MuteStatus(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid user id")
		return
	}

	muted := h.moderation.IsMuted(userID)
	resp := gin.H{"user_id": userID, "muted": muted}
	if remaining, ok := h.moderation.MuteTimeRemaining(userID); ok {
		resp["remaining"] = remaining
	}

	c.JSON(http.StatusOK, resp)
}

// BanUser permanently bans a user by username
func (h *ModerationHandler) BanUser(c *gin.Context) {
	var req models.BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.moderation.BanUser(req.Username, actingUser(c)); err != nil {
		ForumErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "banned"})
}

// UnbanUser lifts a ban by user id
func (h *ModerationHandler) UnbanUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.moderation.UnbanUser(userID, actingUser(c)); err != nil {
		ForumErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "unbanned"})
}

// AddModerator registers a moderator, developer only
func (h *ModerationHandler) AddModerator(c *gin.Context) {
	var req models.ModeratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.moderation.AddModerator(req.UserID, actingUser(c)); err != nil {
		ForumErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "added"})
}

// RemoveModerator removes a moderator, developer only
func (h *ModerationHandler) RemoveModerator(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.moderation.RemoveModerator(userID, actingUser(c)); err != nil {
		ForumErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// ListModerators returns the registry
func (h *ModerationHandler) ListModerators(c *gin.Context) {
	entries, err := h.moderation.ListModerators()
	if err != nil {
		ForumErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"moderators": entries})
}
