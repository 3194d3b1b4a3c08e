package net

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"CanvasBoard/internal/logx"
)

// Client is a peer connection to a host's relay.
type Client struct {
	conn *websocket.Conn
	log  *slog.Logger
	mu   sync.Mutex
}

// Dial connects to addr, which may be a share link, host:port or a ws URL.
func Dial(ctx context.Context, addr string) (*Client, error) {
	url := WebSocketURL(addr)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", url, err)
	}
	c := &Client{conn: conn, log: logx.For("client")}
	c.log.Info("connected", "url", url, "local", conn.LocalAddr().String())
	return c, nil
}

// Send writes m to the host. It is safe for concurrent use.
func (c *Client) Send(m Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(m); err != nil {
		return fmt.Errorf("send %s: %w", m.Type, err)
	}
	return nil
}

// Listen calls fn for every message relayed by the host until the
// connection ends. A normal close returns nil.
func (c *Client) Listen(fn func(Message)) error {
	for {
		var m Message
		if err := c.conn.ReadJSON(&m); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("receive: %w", err)
		}
		fn(m)
	}
}

// Close says goodbye and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	c.mu.Unlock()
	return c.conn.Close()
}
