package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestClient(userID uuid.UUID) *Client {
	return &Client{
		session: uuid.New(),
		userID:  userID,
		send:    make(chan []byte, 4),
	}
}

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatal("condition never became true")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestHubRegistry(t *testing.T) {
	h := NewHub()
	go h.Run()

	user := uuid.New()
	c1 := newTestClient(user)
	c2 := newTestClient(user)
	spectator := newTestClient(uuid.Nil)

	h.register <- c1
	h.register <- c2
	h.register <- spectator

	waitUntil(t, func() bool { return len(h.OnlineUsers()) == 2 })

	if !h.IsUserOnline(user) {
		t.Error("user with two sessions should be online")
	}
	// anonymous sessions never show up as online users
	if h.IsUserOnline(uuid.Nil) {
		t.Error("nil id must not read as online")
	}

	// dropping one of two sessions keeps the user online
	h.unregister <- c1
	waitUntil(t, func() bool { return len(h.OnlineUsers()) == 1 })
	if !h.IsUserOnline(user) {
		t.Error("user should stay online while a session remains")
	}

	h.unregister <- c2
	waitUntil(t, func() bool { return !h.IsUserOnline(user) })

	// the closed session's send channel must be closed
	select {
	case _, ok := <-c1.send:
		if ok {
			t.Error("expected closed send channel")
		}
	case <-time.After(time.Second):
		t.Error("send channel never closed")
	}
}

func TestHubUnregisterUnknownClient(t *testing.T) {
	h := NewHub()
	go h.Run()

	c := newTestClient(uuid.New())
	h.unregister <- c

	// must not panic or close anything; the client was never registered
	select {
	case <-c.send:
		t.Error("unexpected activity on unregistered client")
	case <-time.After(50 * time.Millisecond):
	}
}
