package net

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CanvasBoard/internal/state"
)

func dialTest(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestHubRelaysToOtherPeers(t *testing.T) {
	hub := NewHub()
	var mu sync.Mutex
	var hosted []Message
	hub.OnMessage = func(m Message) {
		mu.Lock()
		hosted = append(hosted, m)
		mu.Unlock()
	}
	srv := httptest.NewServer(hub)
	defer srv.Close()

	alice := dialTest(t, srv)
	bob := dialTest(t, srv)
	require.Eventually(t, func() bool { return hub.Peers() == 2 }, 2*time.Second, 10*time.Millisecond)

	aliceGot := make(chan Message, 4)
	bobGot := make(chan Message, 4)
	go alice.Listen(func(m Message) { aliceGot <- m })
	go bob.Listen(func(m Message) { bobGot <- m })

	batch := state.Batch{Seq: 1, Updates: []state.StrokeUpdate{
		{X: 0.1, Y: 0.2, Type: state.Start, Color: "#000000", ID: "s1", Visible: true},
		{X: 0.3, Y: 0.2, Type: state.Drag, Color: "#000000", ID: "s1", Visible: true},
	}}
	require.NoError(t, alice.Send(BatchMessage("alice", batch)))

	select {
	case m := <-bobGot:
		assert.Equal(t, TypeBatch, m.Type)
		assert.Equal(t, "alice", m.Origin)
		assert.Equal(t, uint64(1), m.Seq)
		assert.Equal(t, batch.Updates, m.Updates)
	case <-time.After(2 * time.Second):
		t.Fatal("bob did not receive the batch")
	}

	require.NoError(t, bob.Send(ClearMessage("bob")))
	select {
	case m := <-aliceGot:
		assert.Equal(t, TypeClear, m.Type, "alice only sees bob's clear, never her own batch")
	case <-time.After(2 * time.Second):
		t.Fatal("alice did not receive the clear")
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(hosted) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHubBroadcastFromHost(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	peer := dialTest(t, srv)
	require.Eventually(t, func() bool { return hub.Peers() == 1 }, 2*time.Second, 10*time.Millisecond)
	got := make(chan Message, 1)
	go peer.Listen(func(m Message) { got <- m })

	hub.Broadcast(ClearMessage("host"), nil)
	select {
	case m := <-got:
		assert.Equal(t, "host", m.Origin)
	case <-time.After(2 * time.Second):
		t.Fatal("peer did not receive the host broadcast")
	}

	hub.Close()
	assert.Zero(t, hub.Peers())
}

func TestWebSocketURL(t *testing.T) {
	assert.Equal(t, "ws://10.0.0.2:8080/ws", WebSocketURL("canvasboard://10.0.0.2:8080/"))
	assert.Equal(t, "ws://10.0.0.2:8080/ws", WebSocketURL("10.0.0.2:8080"))
	assert.Equal(t, "wss://example.com/ws", WebSocketURL("wss://example.com/ws"))
	assert.Equal(t, "canvasboard://10.0.0.2:8080", ShareLink("10.0.0.2", 8080))
}
