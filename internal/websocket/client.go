package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	Conn *websocket.Conn

	// Visitor session this connection watches
	SessionID string

	// Buffered channel of outbound frames.
	Send chan []byte
}

// readPump forwards visitor frames to the command handler.
func (c *Client) readPump() {
	defer func() {
		c.Hub.detach(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Hub", "Unexpected close", map[string]interface{}{"session_id": c.SessionID, "error": err})
			}
			break
		}
		if c.Hub.handler == nil {
			continue
		}
		for _, reply := range c.Hub.handler.HandleFrame(context.Background(), c.SessionID, raw) {
			c.reply(reply)
		}
	}
}

func (c *Client) reply(frame Frame) {
	data, err := json.Marshal(frame)
	if err != nil {
		return
	}
	c.Hub.mu.RLock()
	defer c.Hub.mu.RUnlock()
	for _, registered := range c.Hub.clients[c.SessionID] {
		if registered != c {
			continue
		}
		select {
		case c.Send <- data:
		default:
		}
	}
}

// writePump pumps frames from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// one frame per websocket message so clients can JSON.parse each
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
