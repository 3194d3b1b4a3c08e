package net

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"CanvasBoard/internal/logx"
	"CanvasBoard/internal/state"
)

// RelayPath is where the hub accepts websocket connections.
const RelayPath = "/ws"

const writeWait = 5 * time.Second

// Peer is one connected client.
type Peer struct {
	conn *websocket.Conn
	addr string
	mu   sync.Mutex
}

// Send writes m to the peer. It is safe for concurrent use.
func (p *Peer) Send(m Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteJSON(m)
}

// Hub is run by the host. It relays every message received from a peer to
// all other peers, in arrival order, and hands it to OnMessage so the host's
// own board follows along.
type Hub struct {
	// OnMessage is called for every message received from a peer.
	OnMessage func(Message)

	upgrader websocket.Upgrader
	log      *slog.Logger

	mu    sync.RWMutex
	peers map[*Peer]struct{}
	seqs  map[string]*state.Sequence
}

// NewHub creates a hub with no peers.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			// Sessions are LAN only and joined by link.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log:   logx.For("relay"),
		peers: make(map[*Peer]struct{}),
		seqs:  make(map[string]*state.Sequence),
	}
}

func (h *Hub) add(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.peers[p] = struct{}{}
	h.log.Info("peer connected", "addr", p.addr)
}

func (h *Hub) remove(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.peers, p)
	h.log.Info("peer disconnected", "addr", p.addr)
}

// Peers returns the number of connected peers.
func (h *Hub) Peers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Broadcast sends m to every peer except exclude, which may be nil.
func (h *Hub) Broadcast(m Message, exclude *Peer) {
	h.mu.RLock()
	peers := make([]*Peer, 0, len(h.peers))
	for p := range h.peers {
		if p != exclude {
			peers = append(peers, p)
		}
	}
	h.mu.RUnlock()

	for _, p := range peers {
		if err := p.Send(m); err != nil {
			h.log.Warn("relay write failed", "addr", p.addr, "err", err)
		}
	}
}

// observe logs gaps in a peer's batch numbering.
func (h *Hub) observe(m Message) {
	if m.Type != TypeBatch || m.Seq == 0 {
		return
	}
	h.mu.Lock()
	seq, ok := h.seqs[m.Origin]
	if !ok {
		seq = &state.Sequence{}
		h.seqs[m.Origin] = seq
	}
	h.mu.Unlock()
	last := seq.Current()
	seq.Observe(m.Seq)
	if last != 0 && m.Seq != last+1 {
		h.log.Warn("batch sequence gap", "origin", m.Origin, "last", last, "seq", m.Seq)
	}
}

// ServeHTTP upgrades the request and serves the peer until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	p := &Peer{conn: conn, addr: r.RemoteAddr}
	h.add(p)
	defer func() {
		h.remove(p)
		conn.Close()
	}()

	for {
		var m Message
		if err := conn.ReadJSON(&m); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug("peer read ended", "addr", p.addr, "err", err)
			}
			return
		}
		h.log.Debug("received", "type", m.Type, "addr", p.addr, "updates", len(m.Updates))
		h.observe(m)
		if h.OnMessage != nil {
			h.OnMessage(m)
		}
		h.Broadcast(m, p)
	}
}

// Close disconnects every peer.
func (h *Hub) Close() {
	h.mu.Lock()
	peers := h.peers
	h.peers = make(map[*Peer]struct{})
	h.mu.Unlock()
	for p := range peers {
		p.mu.Lock()
		_ = p.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "host closed"),
			time.Now().Add(writeWait))
		p.mu.Unlock()
		p.conn.Close()
	}
}

// ListenAndServe serves the hub on port until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle(RelayPath, h)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	go func() {
		<-ctx.Done()
		h.Close()
		shutdown, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	h.log.Info("relay listening", "port", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("relay: %w", err)
	}
	return nil
}
