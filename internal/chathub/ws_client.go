package chathub

import (
	"encoding/json"
	"time"

	"duetchat/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// WebSocketClient is the gorilla/websocket implementation of Client.
type WebSocketClient struct {
	UserRole string
	Conn     *websocket.Conn
	Hub      *ManagerService
	Send     chan models.ChatEvent
}

func (c *WebSocketClient) GetUserRole() string                     { return c.UserRole }
func (c *WebSocketClient) GetSendChannel() chan<- models.ChatEvent { return c.Send }

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes the Send channel, which stops the write pump; the read pump
// stops when the connection is closed in its defer.
func (c *WebSocketClient) Close() {
	close(c.Send)
}

// readPump reads client frames. Message sends go through the REST API; the
// socket only carries lightweight typing signals upstream, so anything else
// is dropped.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.Logger.WithError(err).Error("WebSocket read failed")
			}
			break
		}

		var event models.ChatEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			c.Hub.Logger.WithError(err).WithField("role", c.UserRole).Error("Invalid client event")
			continue
		}
		if event.Type != models.EventTyping {
			continue
		}

		event.SenderRole = c.UserRole
		c.Hub.IncomingCh <- event
	}
}

// writePump writes queued events to the socket and keeps the connection
// alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			payload, err := json.Marshal(event)
			if err != nil {
				c.Hub.Logger.WithError(err).WithField("role", c.UserRole).Error("Failed to encode event")
				continue
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(payload)

			// Drain anything already queued into the same frame batch.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				next := <-c.Send
				extra, _ := json.Marshal(next)
				w.Write(extra)
			}

			if err := w.Close(); err != nil {
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
