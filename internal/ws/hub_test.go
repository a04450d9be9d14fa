package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lumenhq/lumen-backend/internal/domain"
)

func newTestClient(h *Hub, buffer int) *Client {
	return &Client{hub: h, send: make(chan []byte, buffer)}
}

func TestHubBroadcastWithoutRedis(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	a := newTestClient(hub, 8)
	b := newTestClient(hub, 8)
	hub.Register(a)
	hub.Register(b)

	msg := &domain.ChatMessage{ID: "m1", UserID: 1, Username: "alice", Body: "hello"}
	hub.PublishMessage(msg)

	for _, client := range []*Client{a, b} {
		select {
		case data := <-client.send:
			var ev Event
			if err := json.Unmarshal(data, &ev); err != nil {
				t.Fatalf("failed to decode event: %v", err)
			}
			if ev.Type != "message" {
				t.Errorf("event type = %q, want %q", ev.Type, "message")
			}
		case <-time.After(2 * time.Second):
			t.Fatal("client did not receive the broadcast")
		}
	}
}

func TestHubDropsSlowConsumer(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	healthy := newTestClient(hub, 8)
	slow := newTestClient(hub, 0) // no buffer, never read
	hub.Register(healthy)
	hub.Register(slow)

	hub.PublishMessage(&domain.ChatMessage{ID: "m1", Body: "hello"})

	select {
	case <-healthy.send:
	case <-time.After(2 * time.Second):
		t.Fatal("healthy client did not receive the broadcast")
	}

	// the slow client's send channel must be closed by the hub
	select {
	case _, ok := <-slow.send:
		if ok {
			t.Error("slow client unexpectedly received a message")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("slow client was not dropped")
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	client := newTestClient(hub, 8)
	hub.Register(client)
	hub.unregister <- client

	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected closed send channel after unregister")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("send channel was not closed")
	}
}
