package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// Client is one authenticated-or-not connection. Its name is empty until
// an authenticate action succeeds; every other action is rejected until
// then, per spec.md's authentication boundary.
type Client struct {
	id      string
	name    string
	roomID  string
	conn    *websocket.Conn
	send    chan []byte
	gw      *Gateway
	limiter *rate.Limiter

	actionFailed bool
}

// inbound is the generic envelope shape of a client message. handleRaw
// decodes only the type field, into its own local struct, before each
// action re-decodes and validates the full payload.
type inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"-"`
}

func (c *Client) readPump() {
	defer func() {
		c.gw.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		if !c.limiter.Allow() {
			c.sendError("rate limited")
			continue
		}
		c.handleRaw(raw)
	}
}

func (c *Client) handleRaw(raw []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		c.sendError("malformed message")
		return
	}
	if env.Type != "authenticate" && c.name == "" {
		c.sendError("not authenticated")
		return
	}
	c.dispatch(env.Type, raw)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

func (c *Client) deliver(payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
		c.gw.unregister <- c
	}
}

func (c *Client) sendError(message string) {
	c.actionFailed = true
	c.deliver(map[string]any{"type": "error", "message": message})
}
