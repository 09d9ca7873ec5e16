package models

import "github.com/google/uuid"

// WebSocket event types. Commands flow client -> server, the rest flow back.
const (
	EventOpenContext = "context.open"
	EventFeedUpdate  = "feed.update"
	EventSend        = "message.send"
	EventStartReply  = "reply.start"
	EventCancelReply = "reply.cancel"
	EventReact       = "reaction.toggle"
	EventDelete      = "message.delete"
	EventError       = "error"
)

type WSMessage struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

type WSOpenContextPayload struct {
	Context string `json:"context"`
}

type WSSendPayload struct {
	// Context is optional; an empty value posts into the open context
	Context string `json:"context,omitempty"`
	Body    string `json:"body"`
}

type WSStartReplyPayload struct {
	MessageID uuid.UUID `json:"message_id"`
}

type WSReactPayload struct {
	MessageID uuid.UUID    `json:"message_id"`
	Type      ReactionType `json:"type"`
}

type WSDeletePayload struct {
	MessageID uuid.UUID `json:"message_id"`
}

type WSErrorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}
