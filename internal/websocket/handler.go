package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches conn to the hub for sessionID and blocks until it closes.
func ServeWs(hub *Hub, conn *websocket.Conn, sessionID string) {
	client := &Client{Hub: hub, Conn: conn, SessionID: sessionID, Send: make(chan []byte, 256)}
	if !hub.attach(client) {
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
