package main

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPongTimeout  = 60 * time.Second
	// Must stay below wsPongTimeout or healthy peers get dropped.
	wsPingPeriod = 25 * time.Second
)

// writePump drains the client's send queue onto the connection and keeps the
// peer alive with ping control frames. It owns all writes to conn; a closed
// send queue shuts the connection down cleanly.
func (c *Client) writePump(conn *websocket.Conn) error {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if !ok {
				return conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

// armReadKeepalive pairs with writePump's pings: the read deadline advances on
// every pong, so a silent peer times out after wsPongTimeout.
func armReadKeepalive(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	})
}
