package websocket

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/GianniRod/Real-Futbol/internal/forum"
	"github.com/GianniRod/Real-Futbol/internal/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 10240 // 10KB
)

// Client is one WebSocket connection bound to one forum engine. The engine
// pushes every recomputed view into the send channel; commands from the peer
// drive the engine.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	session uuid.UUID
	userID  uuid.UUID
	engine  *forum.Engine
}

// NewClient creates a client and its engine. The userID may be uuid.Nil for
// a read-only spectator connection.
func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID, deps forum.Deps) *Client {
	c := &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		session: uuid.New(),
		userID:  userID,
	}
	c.engine = forum.NewEngine(deps, userID, c.pushView)
	return c
}

// pushView is the engine sink. It runs with the engine lock held, so it only
// marshals and hands off; a full send buffer drops the frame, the next
// snapshot supersedes it anyway.
func (c *Client) pushView(view forum.View) {
	data, err := json.Marshal(models.WSMessage{
		Event:   models.EventFeedUpdate,
		Payload: view,
	})
	if err != nil {
		log.Printf("failed to marshal view: %v", err)
		return
	}

	select {
	case c.send <- data:
	default:
	}
}

// ReadPump pumps commands from the WebSocket connection into the engine
func (c *Client) ReadPump() {
	defer func() {
		c.engine.Close()
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// WritePump pumps engine views from the send channel to the WebSocket
// connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage dispatches one command frame
func (c *Client) handleMessage(data []byte) {
	var wsMsg models.WSMessage
	if err := json.Unmarshal(data, &wsMsg); err != nil {
		c.sendError("Invalid message format", "")
		return
	}

	switch wsMsg.Event {
	case models.EventOpenContext:
		c.handleOpenContext(wsMsg.Payload)

	case models.EventSend:
		c.handleSend(wsMsg.Payload)

	case models.EventStartReply:
		c.handleStartReply(wsMsg.Payload)

	case models.EventCancelReply:
		c.engine.CancelReply()

	case models.EventReact:
		c.handleReact(wsMsg.Payload)

	case models.EventDelete:
		c.handleDelete(wsMsg.Payload)

	default:
		c.sendError("Unknown event type", "")
	}
}

func (c *Client) handleOpenContext(payload interface{}) {
	var req models.WSOpenContextPayload
	if !c.decode(payload, &req) {
		return
	}

	if err := c.engine.Open(req.Context); err != nil {
		c.sendEngineError(err)
	}
}

func (c *Client) handleSend(payload interface{}) {
	var req models.WSSendPayload
	if !c.decode(payload, &req) {
		return
	}

	if _, err := c.engine.Send(req.Context, req.Body); err != nil {
		c.sendEngineError(err)
	}
}

func (c *Client) handleStartReply(payload interface{}) {
	var req models.WSStartReplyPayload
	if !c.decode(payload, &req) {
		return
	}

	if err := c.engine.StartReplyByID(req.MessageID); err != nil {
		c.sendEngineError(err)
	}
}

func (c *Client) handleReact(payload interface{}) {
	var req models.WSReactPayload
	if !c.decode(payload, &req) {
		return
	}

	if err := c.engine.React(req.MessageID, req.Type); err != nil {
		c.sendEngineError(err)
	}
}

func (c *Client) handleDelete(payload interface{}) {
	var req models.WSDeletePayload
	if !c.decode(payload, &req) {
		return
	}

	if err := c.engine.Delete(req.MessageID); err != nil {
		c.sendEngineError(err)
	}
}

func (c *Client) decode(payload interface{}, dst interface{}) bool {
	data, _ := json.Marshal(payload)
	if err := json.Unmarshal(data, dst); err != nil {
		c.sendError("Invalid payload", "")
		return false
	}
	return true
}

// sendEngineError maps the engine's error taxonomy onto wire codes
func (c *Client) sendEngineError(err error) {
	code := "internal"
	switch {
	case errors.Is(err, forum.ErrUnauthenticated):
		code = "unauthenticated"
	case errors.Is(err, forum.ErrPermissionDenied):
		code = "permission_denied"
	case errors.Is(err, forum.ErrUserNotFound):
		code = "user_not_found"
	case errors.Is(err, forum.ErrInvalidOperation):
		code = "invalid_operation"
	case errors.Is(err, forum.ErrUpstreamUnavailable):
		code = "upstream_unavailable"
	}
	c.sendError(err.Error(), code)
}

// sendError sends an error frame to the client
func (c *Client) sendError(message, code string) {
	data, _ := json.Marshal(models.WSMessage{
		Event: models.EventError,
		Payload: models.WSErrorPayload{
			Message: message,
			Code:    code,
		},
	})

	select {
	case c.send <- data:
	default:
	}
}
