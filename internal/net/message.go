// Package net shares a board session over the local network: a websocket
// relay run by the host, the matching client, and mDNS discovery.
package net

import (
	"fmt"
	"strings"

	"CanvasBoard/internal/board"
	"CanvasBoard/internal/state"
)

// Message types.
const (
	TypeBatch = "batch"
	TypeClear = "clear"
)

// LinkScheme prefixes share links handed out by a host.
const LinkScheme = "canvasboard://"

// Message is one relayed board event. Updates use fraction coordinates.
type Message struct {
	Type    string               `json:"type"`
	Seq     uint64               `json:"seq,omitempty"`
	Origin  string               `json:"origin"`
	Updates []state.StrokeUpdate `json:"updates,omitempty"`
}

// BatchMessage wraps a flushed batch.
func BatchMessage(origin string, b state.Batch) Message {
	return Message{Type: TypeBatch, Seq: b.Seq, Origin: origin, Updates: b.Updates}
}

// ClearMessage announces a clear.
func ClearMessage(origin string) Message {
	return Message{Type: TypeClear, Origin: origin}
}

// Apply replays a received message on b. Clears do not fire OnClear again,
// so they are not echoed back to the session.
func Apply(b *board.Board, m Message) {
	switch m.Type {
	case TypeBatch:
		b.DrawUpdates(m.Updates)
	case TypeClear:
		b.Clear(false)
	}
}

// ShareLink is the link a host shows to invite peers.
func ShareLink(host string, port int) string {
	return fmt.Sprintf("%s%s:%d", LinkScheme, host, port)
}

// WebSocketURL turns a share link, a bare host:port or a ws URL into the
// relay endpoint.
func WebSocketURL(addr string) string {
	addr = strings.TrimSpace(addr)
	addr = strings.TrimPrefix(addr, LinkScheme)
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		return addr
	}
	addr = strings.TrimSuffix(addr, "/")
	return "ws://" + addr + RelayPath
}
